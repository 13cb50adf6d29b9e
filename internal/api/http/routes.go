package httpapi

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/render"
)

// Dashboard is the state machine surface the routes need.
type Dashboard interface {
	State() dashboard.ViewState
	Start(ctx context.Context) error
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Dashboard, imageOpts render.ImageOptions) {
	app.Get("/", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := render.HTML(&buf, render.Build(d.State())); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	app.Get("/dashboard.png", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := render.Image(&buf, render.Build(d.State()), imageOpts); err != nil {
			log.Printf("ERROR: rendering dashboard image: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard image")
		}
		c.Type("png")
		return c.Send(buf.Bytes())
	})

	// Form action for the HTML page: start a cycle and go back to the page.
	app.Post("/refresh", func(c *fiber.Ctx) error {
		if err := d.Start(context.Background()); err != nil && !errors.Is(err, dashboard.ErrCycleInFlight) {
			log.Printf("ERROR: dashboard refresh failed: %v", err)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(render.Build(d.State()))
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		if err := d.Start(context.Background()); err != nil {
			if errors.Is(err, dashboard.ErrCycleInFlight) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return err
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": dashboard.StatusLoading,
		})
	})
}
