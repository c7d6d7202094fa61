package routes

import "github.com/gofiber/fiber/v2"

// Version is overridden at build time with -ldflags "-X ..."
var Version = "v0.1"

func APIVersion(network string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version": Version,
			"network": network,
		})
	}
}
