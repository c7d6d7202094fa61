package schedule

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/travigo/busradar/pkg/geo"
	"github.com/travigo/busradar/pkg/transit"
	"golang.org/x/exp/slices"
)

// Index is an immutable, cross referenced snapshot of the static schedule
type Index struct {
	id string

	stops     map[string]*transit.Stop
	stopOrder []string

	routes     []*transit.Route
	routesByID map[string]*transit.Route

	trips      map[string]*transit.Trip
	routeTrips map[string][]string

	stopRoutes map[string][]string
	tripVisits map[string][]transit.StopVisit
}

type Stats struct {
	Stops      int `json:"stops"`
	Routes     int `json:"routes"`
	Trips      int `json:"trips"`
	StopRoutes int `json:"stopRoutes"`
	TripVisits int `json:"tripVisits"`
}

func newIndex() *Index {
	return &Index{
		id:         uuid.New().String(),
		stops:      map[string]*transit.Stop{},
		routesByID: map[string]*transit.Route{},
		trips:      map[string]*transit.Trip{},
		routeTrips: map[string][]string{},
		stopRoutes: map[string][]string{},
		tripVisits: map[string][]transit.StopVisit{},
	}
}

func (i *Index) Stats() Stats {
	return Stats{
		Stops:      len(i.stops),
		Routes:     len(i.routes),
		Trips:      len(i.trips),
		StopRoutes: len(i.stopRoutes),
		TripVisits: len(i.tripVisits),
	}
}

// ID is unique to every built index
func (i *Index) ID() string {
	return i.id
}

func (i *Index) Stop(id string) (*transit.Stop, bool) {
	stop, ok := i.stops[id]
	return stop, ok
}

// Stops returns every stop in dataset order
func (i *Index) Stops() []*transit.Stop {
	stops := make([]*transit.Stop, 0, len(i.stopOrder))
	for _, id := range i.stopOrder {
		stops = append(stops, i.stops[id])
	}

	return stops
}

// StopsWithin returns the stops no further than radius metres from the point, nearest first
func (i *Index) StopsWithin(latitude, longitude, radius float64) []transit.NearbyStop {
	type candidate struct {
		stop     *transit.Stop
		distance float64
	}

	var candidates []candidate
	for _, id := range i.stopOrder {
		stop := i.stops[id]

		distance := geo.Distance(latitude, longitude, stop.Latitude, stop.Longitude)
		if distance <= radius {
			candidates = append(candidates, candidate{stop: stop, distance: distance})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].distance < candidates[b].distance
	})

	nearby := make([]transit.NearbyStop, 0, len(candidates))
	for _, c := range candidates {
		nearby = append(nearby, transit.NearbyStop{
			Stop:     c.stop,
			Distance: int(math.Round(c.distance)),
		})
	}

	return nearby
}

func (i *Index) StopsInBounds(bounds transit.Bounds) []*transit.Stop {
	var stops []*transit.Stop

	for _, id := range i.stopOrder {
		stop := i.stops[id]
		if stop.Location().InBounds(bounds) {
			stops = append(stops, stop)
		}
	}

	return stops
}

func (i *Index) Route(id string) (*transit.Route, bool) {
	route, ok := i.routesByID[id]
	return route, ok
}

func (i *Index) Routes() []*transit.Route {
	return i.routes
}

// ResolveRoute matches an identifier against route ids, then short names, then
// short names ignoring case
func (i *Index) ResolveRoute(identifier string) (*transit.Route, bool) {
	if route, ok := i.routesByID[identifier]; ok {
		return route, true
	}

	for _, route := range i.routes {
		if route.ShortName == identifier {
			return route, true
		}
	}

	for _, route := range i.routes {
		if strings.EqualFold(route.ShortName, identifier) {
			return route, true
		}
	}

	return nil, false
}

func (i *Index) Trip(id string) (*transit.Trip, bool) {
	trip, ok := i.trips[id]
	return trip, ok
}

func (i *Index) TripIDs(routeID string) []string {
	return i.routeTrips[routeID]
}

// Visits returns the trip's stop visits ordered by sequence
func (i *Index) Visits(tripID string) []transit.StopVisit {
	return i.tripVisits[tripID]
}

// RouteIDsForStop returns the de-duplicated routes serving a stop, in first seen order
func (i *Index) RouteIDsForStop(stopID string) []string {
	return i.stopRoutes[stopID]
}

// RoutesForStop returns up to limit routes serving the stop in route table order.
// A limit of zero or less means no limit.
func (i *Index) RoutesForStop(stopID string, limit int) []*transit.Route {
	routeIDs := i.stopRoutes[stopID]
	if len(routeIDs) == 0 {
		return nil
	}

	var routes []*transit.Route
	for _, route := range i.routes {
		if limit > 0 && len(routes) >= limit {
			break
		}

		if slices.Contains(routeIDs, route.ID) {
			routes = append(routes, route)
		}
	}

	return routes
}
