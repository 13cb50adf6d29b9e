package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Granted always allows access.
type Granted struct{}

func (Granted) Request(context.Context) (bool, error) { return true, nil }

// Denied always refuses access.
type Denied struct{}

func (Denied) Request(context.Context) (bool, error) { return false, nil }

// Prompt asks on a terminal each time a position is needed.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Request accepts "y" or "yes" (any case); every other answer, including
// end of input, is a refusal.
func (p *Prompt) Request(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := fmt.Fprint(p.out, "Allow weather-dashboard to use your location? [y/N] "); err != nil {
		return false, err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
