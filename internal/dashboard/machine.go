package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrCycleInFlight is returned by Trigger while a previous cycle is running.
var ErrCycleInFlight = errors.New("a fetch cycle is already in progress")

// Locator produces the coordinates for one fetch cycle.
type Locator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// SnapshotFetcher runs the concurrent forecast + place name lookups.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, coords weather.Coordinates) (weather.Snapshot, error)
}

// Listener is notified after every state transition.
type Listener func(ViewState)

// Machine drives Idle -> Loading -> Success | Error.
type Machine struct {
	locator Locator
	fetcher SnapshotFetcher
	clock   clock.Clock

	state    atomic.Pointer[ViewState]
	inFlight atomic.Bool

	mu        sync.RWMutex
	listeners []Listener
}

// NewMachine creates a Machine in the Idle state. A nil clock uses the
// real clock.
func NewMachine(locator Locator, fetcher SnapshotFetcher, clk clock.Clock) *Machine {
	if clk == nil {
		clk = clock.NewClock()
	}
	m := &Machine{
		locator: locator,
		fetcher: fetcher,
		clock:   clk,
	}
	idle := Idle()
	m.state.Store(&idle)
	return m
}

// State returns the current view state.
func (m *Machine) State() ViewState {
	return *m.state.Load()
}

// Subscribe registers l for every subsequent transition.
func (m *Machine) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Trigger runs one full fetch cycle and returns the terminal state. It is
// used for the initial load, the retry action and any later refresh.
// Cycles do not overlap: a call made while one is running returns
// ErrCycleInFlight and leaves the state alone.
func (m *Machine) Trigger(ctx context.Context) (ViewState, error) {
	ctx, ok := m.begin(ctx)
	if !ok {
		return m.State(), ErrCycleInFlight
	}
	return m.run(ctx), nil
}

// Start enters Loading before it returns and finishes the cycle in the
// background. It returns ErrCycleInFlight if a cycle is already running.
func (m *Machine) Start(ctx context.Context) error {
	ctx, ok := m.begin(ctx)
	if !ok {
		return ErrCycleInFlight
	}
	go m.run(ctx)
	return nil
}

// begin reserves the cycle and publishes Loading.
func (m *Machine) begin(ctx context.Context) (context.Context, bool) {
	if !m.inFlight.CompareAndSwap(false, true) {
		return ctx, false
	}
	ctx = weather.WithCycleID(ctx, uuid.NewString())
	m.transition(Loading())
	return ctx, true
}

func (m *Machine) run(ctx context.Context) ViewState {
	defer m.inFlight.Store(false)

	cycleID := weather.CycleID(ctx)
	started := m.clock.Now()

	coords, err := m.locator.Locate(ctx)
	if err != nil {
		log.Printf("INFO: [%s] location unavailable (%s): %v", cycleID, weather.KindOf(err), err)
		return m.transition(Failed(weather.UserMessage(err)))
	}

	snapshot, err := m.fetcher.FetchSnapshot(ctx, coords)
	if err != nil {
		return m.transition(Failed(weather.UserMessage(err)))
	}

	final := m.transition(Succeeded(snapshot))
	log.Printf("INFO: [%s] dashboard updated for %q in %s", cycleID, snapshot.LocationName, m.clock.Now().Sub(started))
	return final
}

// Busy reports whether a cycle is currently running.
func (m *Machine) Busy() bool {
	return m.inFlight.Load()
}

func (m *Machine) transition(next ViewState) ViewState {
	m.state.Store(&next)

	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}
