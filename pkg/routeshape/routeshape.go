package routeshape

import (
	"fmt"

	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/transit"
)

const DefaultColour = "053e73"

// Reconstruct picks the trip with the most stop visits for the route and turns
// it into an ordered stop list and a line geometry. The identifier may be a
// route id or a public short name.
func Reconstruct(index *schedule.Index, identifier string, defaultColour string) (*transit.RouteShape, error) {
	if defaultColour == "" {
		defaultColour = DefaultColour
	}

	route, ok := index.ResolveRoute(identifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", schedule.ErrRouteNotFound, identifier)
	}

	tripID, ok := longestTrip(index, route.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no trips", schedule.ErrRouteNotFound, identifier)
	}

	var stops []transit.ShapeStop
	var locations []*transit.Location

	for _, visit := range index.Visits(tripID) {
		stop, ok := index.Stop(visit.StopID)
		if !ok {
			continue
		}

		stops = append(stops, transit.ShapeStop{
			StopID:    stop.ID,
			Name:      stop.Name,
			Latitude:  stop.Latitude,
			Longitude: stop.Longitude,
			Sequence:  visit.Sequence,
		})
		locations = append(locations, stop.Location())
	}

	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: %s has no known stops", schedule.ErrRouteNotFound, identifier)
	}

	summary := route.Summary(defaultColour)
	summary.RouteID = identifier

	return &transit.RouteShape{
		Route: summary,
		Stops: stops,
		LineGeoJSON: &transit.Feature{
			Type: "Feature",
			Properties: map[string]string{
				"route_id":         identifier,
				"route_short_name": route.ShortName,
				"route_long_name":  route.LongName,
			},
			Geometry: transit.NewLineString(locations),
		},
	}, nil
}

// longestTrip returns the trip with the most visits, the first one winning ties
func longestTrip(index *schedule.Index, routeID string) (string, bool) {
	bestTrip := ""
	maxVisits := 0

	for _, tripID := range index.TripIDs(routeID) {
		if visits := len(index.Visits(tripID)); visits > maxVisits {
			maxVisits = visits
			bestTrip = tripID
		}
	}

	return bestTrip, bestTrip != ""
}
