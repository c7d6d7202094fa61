package routes

import (
	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/gtfsrt"
)

func VehiclePositions(aggregator *dataaggregator.Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feed, err := dataaggregator.Lookup[*gtfs.FeedMessage](c.UserContext(), aggregator, query.VehiclePositions{})
		if err != nil {
			return lookupError(c, err)
		}

		encoded, err := gtfsrt.Marshal(feed)
		if err != nil {
			return errorResponse(c, fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, gtfsrt.ContentType)
		return c.Send(encoded)
	}
}
