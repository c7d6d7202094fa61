package query

import "github.com/travigo/busradar/pkg/transit"

type Arrivals struct {
	StopID string
	Point  *transit.Location
}

type VehiclePositions struct{}
