package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/transit"
)

func RouteShapeRouter(router fiber.Router, aggregator *dataaggregator.Aggregator) {
	router.Get("/:routeId", func(c *fiber.Ctx) error {
		shape, err := dataaggregator.Lookup[*transit.RouteShape](c.UserContext(), aggregator, query.RouteShape{
			Identifier: c.Params("routeId"),
		})
		if err != nil {
			return lookupError(c, err)
		}

		return c.JSON(fiber.Map{
			"success":     true,
			"route":       shape.Route,
			"stops":       shape.Stops,
			"lineGeoJSON": shape.LineGeoJSON,
		})
	})
}
