package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/transit"
)

func ArrivalsRouter(router fiber.Router, aggregator *dataaggregator.Aggregator, defaultPoint *transit.Location) {
	router.Get("/:stopId", func(c *fiber.Ctx) error {
		return getArrivals(c, aggregator, defaultPoint)
	})
}

func getArrivals(c *fiber.Ctx, aggregator *dataaggregator.Aggregator, defaultPoint *transit.Location) error {
	stopID := c.Params("stopId")

	// Missing, unparsable and zero coordinates all fall back to the default point
	latitude, ok := queryFloat(c, "stopLat")
	if !ok || latitude == 0 {
		latitude = defaultPoint.Latitude()
	}
	longitude, ok := queryFloat(c, "stopLng")
	if !ok || longitude == 0 {
		longitude = defaultPoint.Longitude()
	}

	board, err := dataaggregator.Lookup[*transit.ArrivalBoard](c.UserContext(), aggregator, query.Arrivals{
		StopID: stopID,
		Point:  transit.NewPoint(latitude, longitude),
	})
	if err != nil {
		return lookupError(c, err)
	}

	if len(board.Arrivals) == 0 {
		return c.JSON(fiber.Map{
			"success":  true,
			"stopId":   board.StopID,
			"arrivals": []*transit.Arrival{},
			"count":    0,
			"message":  board.Message,
		})
	}

	boardReduced, err := reduce(c, board)
	if err != nil {
		return errorResponse(c, fiber.StatusInternalServerError, "Sherrif could not reduce ArrivalBoard")
	}

	if board.Message == "" {
		delete(boardReduced, "message")
	}
	boardReduced["success"] = true

	return c.JSON(boardReduced)
}
