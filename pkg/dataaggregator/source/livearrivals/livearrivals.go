package livearrivals

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/gtfsrt"
	"github.com/travigo/busradar/pkg/routeshape"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/transforms"
	"github.com/travigo/busradar/pkg/transit"
)

const NoArrivalsMessage = "Yaklaşan otobüs bulunamadı"

type RouteCodes interface {
	arrivals.Resolver
	Warm()
}

type Source struct {
	Schedule    source.Schedule
	Vehicles    source.Vehicles
	RouteCodes  RouteCodes
	Engine      *arrivals.Engine
	Transformer *transforms.Transformer

	StopRoutes    int
	DefaultColour string

	Now func() time.Time
}

func (s Source) GetName() string {
	return "Live Arrivals"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(transit.ArrivalBoard{}),
		reflect.TypeOf((*gtfs.FeedMessage)(nil)).Elem(),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Arrivals:
		return s.ArrivalsQuery(ctx, q)
	case query.VehiclePositions:
		return s.VehiclePositionsQuery(ctx)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) ArrivalsQuery(ctx context.Context, q query.Arrivals) (*transit.ArrivalBoard, error) {
	var index *schedule.Index
	var scheduleErr error
	var vehicles []*transit.Vehicle
	var vehiclesErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		index, scheduleErr = s.Schedule.Get(ctx)
	})
	wg.Go(func() {
		vehicles, vehiclesErr = s.Vehicles.Snapshot(ctx)
	})
	wg.Wait()

	if scheduleErr != nil {
		log.Warn().Err(scheduleErr).Str("stop", q.StopID).Msg("Schedule unavailable, arrivals will have no stop routes")
	}
	if vehiclesErr != nil {
		return nil, fmt.Errorf("%w: %s", arrivals.ErrLiveDataUnavailable, vehiclesErr)
	}

	resolver := s.resolver()

	matched, err := s.Engine.Match(q.Point, vehicles, resolver)
	if err != nil {
		return nil, err
	}

	board := &transit.ArrivalBoard{
		StopID:     q.StopID,
		Arrivals:   matched,
		StopRoutes: []transit.RouteSummary{},
		Count:      len(matched),
		IsRealtime: true,
	}

	if len(matched) == 0 {
		board.Message = NoArrivalsMessage
		return board, nil
	}

	if index != nil {
		for _, route := range index.RoutesForStop(q.StopID, s.StopRoutes) {
			board.StopRoutes = append(board.StopRoutes, route.Summary(s.defaultColour()))
		}
	}

	s.Transformer.Transform(board)

	confident := 0
	for _, arrival := range matched {
		if arrival.HasRouteCode {
			confident++
		}
	}
	log.Debug().Str("stop", q.StopID).Int("arrivals", len(matched)).Int("resolved", confident).Msg("Built arrival board")

	return board, nil
}

func (s Source) VehiclePositionsQuery(ctx context.Context) (*gtfs.FeedMessage, error) {
	vehicles, err := s.Vehicles.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", arrivals.ErrLiveDataUnavailable, err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return gtfsrt.BuildVehiclePositions(vehicles, s.resolver(), now()), nil
}

func (s Source) resolver() arrivals.Resolver {
	if s.RouteCodes == nil {
		return nil
	}

	s.RouteCodes.Warm()

	return s.RouteCodes
}

func (s Source) defaultColour() string {
	if s.DefaultColour == "" {
		return routeshape.DefaultColour
	}

	return s.DefaultColour
}
