package schedulelookup

import (
	"context"
	"fmt"
	"reflect"

	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busradar/pkg/routeshape"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/transforms"
	"github.com/travigo/busradar/pkg/transit"
)

type Source struct {
	Schedule      source.Schedule
	CachedResults *cachedresults.Cache
	Transformer   *transforms.Transformer
	DefaultColour string
}

func (s Source) GetName() string {
	return "Schedule Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(transit.Stop{}),
		reflect.TypeOf([]*transit.Stop{}),
		reflect.TypeOf([]transit.NearbyStop{}),
		reflect.TypeOf([]transit.RouteSummary{}),
		reflect.TypeOf(transit.RouteShape{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q.(type) {
	case query.Stop, query.StopsNearby, query.StopsInBounds, query.AllStops, query.StopRoutes, query.RouteShape:
	default:
		return nil, source.UnsupportedSourceError
	}

	index, err := s.Schedule.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", source.ErrScheduleUnavailable, err)
	}

	switch q := q.(type) {
	case query.Stop:
		return s.StopQuery(index, q)
	case query.StopsNearby:
		return index.StopsWithin(q.Latitude, q.Longitude, q.Radius), nil
	case query.StopsInBounds:
		return index.StopsInBounds(q.Bounds), nil
	case query.AllStops:
		return index.Stops(), nil
	case query.StopRoutes:
		return s.StopRoutesQuery(index, q), nil
	case query.RouteShape:
		return s.RouteShapeQuery(ctx, index, q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) StopQuery(index *schedule.Index, q query.Stop) (*transit.Stop, error) {
	stop, ok := index.Stop(q.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", schedule.ErrStopNotFound, q.ID)
	}

	return stop, nil
}

func (s Source) StopRoutesQuery(index *schedule.Index, q query.StopRoutes) []transit.RouteSummary {
	summaries := []transit.RouteSummary{}
	for _, route := range index.RoutesForStop(q.StopID, q.Limit) {
		summaries = append(summaries, route.Summary(s.defaultColour()))
	}

	s.Transformer.Transform(summaries)

	return summaries
}

func (s Source) RouteShapeQuery(ctx context.Context, index *schedule.Index, q query.RouteShape) (*transit.RouteShape, error) {
	cacheItemPath := fmt.Sprintf("cachedresults/routeshape/%s/%s", index.ID(), q.Identifier)

	var cachedShape transit.RouteShape
	if s.CachedResults.Get(ctx, cacheItemPath, &cachedShape) {
		return &cachedShape, nil
	}

	shape, err := routeshape.Reconstruct(index, q.Identifier, s.defaultColour())
	if err != nil {
		return nil, err
	}

	s.Transformer.Transform(shape)
	s.CachedResults.Set(ctx, cacheItemPath, shape)

	return shape, nil
}

func (s Source) defaultColour() string {
	if s.DefaultColour == "" {
		return routeshape.DefaultColour
	}

	return s.DefaultColour
}
