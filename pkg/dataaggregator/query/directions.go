package query

import "github.com/travigo/busradar/pkg/transit"

type Directions struct {
	From *transit.Location
	To   *transit.Location
	Mode string
}
