package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/transit"
)

type stopResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Distance  *int    `json:"distance"`
}

func StopsRouter(router fiber.Router, aggregator *dataaggregator.Aggregator) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStops(c, aggregator)
	})
}

// listStops filters by radius when lat, lng and radius are all given, by bounding
// box when all four bounds are given, and returns every stop otherwise
func listStops(c *fiber.Ctx, aggregator *dataaggregator.Aggregator) error {
	lat, hasLat := queryFloat(c, "lat")
	lng, hasLng := queryFloat(c, "lng")
	radius, hasRadius := queryFloat(c, "radius")

	minLat, hasMinLat := queryFloat(c, "minLat")
	minLng, hasMinLng := queryFloat(c, "minLng")
	maxLat, hasMaxLat := queryFloat(c, "maxLat")
	maxLng, hasMaxLng := queryFloat(c, "maxLng")

	stops := []stopResponse{}

	switch {
	case hasLat && hasLng && hasRadius:
		nearby, err := dataaggregator.Lookup[[]transit.NearbyStop](c.UserContext(), aggregator, query.StopsNearby{
			Latitude:  lat,
			Longitude: lng,
			Radius:    radius,
		})
		if err != nil {
			return lookupError(c, err)
		}

		for _, stop := range nearby {
			distance := stop.Distance
			stops = append(stops, stopResponse{
				ID:        stop.ID,
				Name:      stop.Name,
				Latitude:  stop.Latitude,
				Longitude: stop.Longitude,
				Distance:  &distance,
			})
		}
	default:
		var q any = query.AllStops{}
		if hasMinLat && hasMinLng && hasMaxLat && hasMaxLng {
			q = query.StopsInBounds{
				Bounds: transit.Bounds{
					MinLatitude:  minLat,
					MinLongitude: minLng,
					MaxLatitude:  maxLat,
					MaxLongitude: maxLng,
				},
			}
		}

		matched, err := dataaggregator.Lookup[[]*transit.Stop](c.UserContext(), aggregator, q)
		if err != nil {
			return lookupError(c, err)
		}

		for _, stop := range matched {
			stops = append(stops, stopResponse{
				ID:        stop.ID,
				Name:      stop.Name,
				Latitude:  stop.Latitude,
				Longitude: stop.Longitude,
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stops,
		"count":   len(stops),
	})
}
