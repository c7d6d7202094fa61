package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/transit"
)

const MissingCoordinatesMessage = "Başlangıç ve bitiş koordinatları gerekli (startLat, startLng, endLat, endLng)"

func DirectionsRouter(router fiber.Router, aggregator *dataaggregator.Aggregator) {
	router.Get("/", func(c *fiber.Ctx) error {
		startLat, hasStartLat := queryFloat(c, "startLat")
		startLng, hasStartLng := queryFloat(c, "startLng")
		endLat, hasEndLat := queryFloat(c, "endLat")
		endLng, hasEndLng := queryFloat(c, "endLng")

		if !hasStartLat || !hasStartLng || !hasEndLat || !hasEndLng {
			return errorResponse(c, fiber.StatusBadRequest, MissingCoordinatesMessage)
		}

		directions, err := dataaggregator.Lookup[*transit.Directions](c.UserContext(), aggregator, query.Directions{
			From: transit.NewPoint(startLat, startLng),
			To:   transit.NewPoint(endLat, endLng),
			Mode: c.Query("mode", "foot"),
		})
		if err != nil {
			return lookupError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"route":   directions,
		})
	})
}
