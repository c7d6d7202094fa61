package query

import "github.com/travigo/busradar/pkg/transit"

type Stop struct {
	ID string
}

type StopsNearby struct {
	Latitude  float64
	Longitude float64
	Radius    float64
}

type StopsInBounds struct {
	Bounds transit.Bounds
}

type AllStops struct{}

// StopRoutes lists the scheduled routes calling at a stop
type StopRoutes struct {
	StopID string
	Limit  int
}
