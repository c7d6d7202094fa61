package routing

import (
	"context"
	"reflect"

	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	osrm "github.com/travigo/busradar/pkg/routing"
	"github.com/travigo/busradar/pkg/transit"
)

type Source struct {
	Client *osrm.Client
}

func (s Source) GetName() string {
	return "OSRM Routing"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(transit.Directions{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Directions:
		return s.Client.Directions(ctx, q.From, q.To, osrm.ParseProfile(q.Mode))
	default:
		return nil, source.UnsupportedSourceError
	}
}
