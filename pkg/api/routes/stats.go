package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/engine"
)

func Stats(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(e.Stats())
	}
}
