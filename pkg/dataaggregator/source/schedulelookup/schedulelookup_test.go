package schedulelookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/schedule/scheduletest"
	"github.com/travigo/busradar/pkg/tabular"
	"github.com/travigo/busradar/pkg/transforms"
	"github.com/travigo/busradar/pkg/transit"
)

func testSource(t *testing.T) Source {
	return Source{
		Schedule: scheduletest.Static{Index: scheduletest.Index(t)},
	}
}

func TestStopQueries(t *testing.T) {
	s := testSource(t)
	ctx := context.Background()

	stop, err := s.Lookup(ctx, query.Stop{ID: "S1"})
	require.NoError(t, err)
	assert.Equal(t, "Kadıköy (Üsküdar)", stop.(*transit.Stop).Name)

	_, err = s.Lookup(ctx, query.Stop{ID: "missing"})
	assert.ErrorIs(t, err, schedule.ErrStopNotFound)

	all, err := s.Lookup(ctx, query.AllStops{})
	require.NoError(t, err)
	assert.Len(t, all.([]*transit.Stop), 4)

	nearby, err := s.Lookup(ctx, query.StopsNearby{Latitude: 40.9923, Longitude: 29.0244, Radius: 800})
	require.NoError(t, err)
	nearbyStops := nearby.([]transit.NearbyStop)
	require.Len(t, nearbyStops, 2)
	assert.Equal(t, "S1", nearbyStops[0].ID)
	assert.Equal(t, 0, nearbyStops[0].Distance)
	assert.Equal(t, "S2", nearbyStops[1].ID)

	inBounds, err := s.Lookup(ctx, query.StopsInBounds{Bounds: transit.Bounds{
		MinLatitude: 40.98, MinLongitude: 29.02, MaxLatitude: 40.99, MaxLongitude: 29.03,
	}})
	require.NoError(t, err)
	var ids []string
	for _, stop := range inBounds.([]*transit.Stop) {
		ids = append(ids, stop.ID)
	}
	assert.Equal(t, []string{"S2", "S3"}, ids)
}

func TestStopRoutesQuery(t *testing.T) {
	s := testSource(t)
	s.Transformer = transforms.NewTransformer([]*transforms.Definition{{
		Type:  "transit.RouteSummary",
		Match: map[string]string{"ShortName": "34"},
		Data:  map[string]interface{}{"Colour": "ff0000"},
	}})

	result, err := s.Lookup(context.Background(), query.StopRoutes{StopID: "S1", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []transit.RouteSummary{
		{RouteID: "R1", ShortName: "500T", LongName: "Tuzla - Cevizlibağ", Colour: "053e73"},
		{RouteID: "R2", ShortName: "34", LongName: "Avcılar - Söğütlüçeşme", Colour: "ff0000"},
	}, result)

	empty, err := s.Lookup(context.Background(), query.StopRoutes{StopID: "nowhere", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []transit.RouteSummary{}, empty)
}

func TestRouteShapeQuery(t *testing.T) {
	s := testSource(t)

	result, err := s.Lookup(context.Background(), query.RouteShape{Identifier: "500t"})
	require.NoError(t, err)

	shape := result.(*transit.RouteShape)
	assert.Equal(t, "500t", shape.Route.RouteID)
	assert.Len(t, shape.Stops, 3)
	assert.Equal(t, "S1", shape.Stops[0].StopID)

	_, err = s.Lookup(context.Background(), query.RouteShape{Identifier: "999"})
	assert.ErrorIs(t, err, schedule.ErrRouteNotFound)
}

func TestRouteShapeQueryCached(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	s := testSource(t)
	s.CachedResults = cachedresults.New(client, time.Minute)

	first, err := s.Lookup(context.Background(), query.RouteShape{Identifier: "R1"})
	require.NoError(t, err)
	assert.True(t, server.Exists("cachedresults/routeshape/"+s.Schedule.(scheduletest.Static).Index.ID()+"/R1"))

	// a different default colour would show up if the shape were rebuilt
	s.DefaultColour = "ffffff"
	second, err := s.Lookup(context.Background(), query.RouteShape{Identifier: "R1"})
	require.NoError(t, err)

	assert.Equal(t, "053e73", second.(*transit.RouteShape).Route.Colour)
	assert.Equal(t, first, second)
}

type swappableSchedule struct {
	index *schedule.Index
}

func (s *swappableSchedule) Get(ctx context.Context) (*schedule.Index, error) {
	return s.index, nil
}

func TestRouteShapeQueryCachedPerIndex(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	provider := &swappableSchedule{index: scheduletest.Index(t)}
	s := Source{
		Schedule:      provider,
		CachedResults: cachedresults.New(client, time.Minute),
	}

	first, err := s.Lookup(context.Background(), query.RouteShape{Identifier: "500T"})
	require.NoError(t, err)
	assert.Len(t, first.(*transit.RouteShape).Stops, 3)

	tables := scheduletest.Tables(t)
	stopTimes, err := tabular.Decode(scheduletest.StopTimes+"T1,S4,08:15:00,4\n", ',')
	require.NoError(t, err)
	tables.StopTimes = stopTimes

	rebuilt, err := schedule.Build(tables)
	require.NoError(t, err)
	require.NotEqual(t, provider.index.ID(), rebuilt.ID())
	provider.index = rebuilt

	second, err := s.Lookup(context.Background(), query.RouteShape{Identifier: "500T"})
	require.NoError(t, err)

	shape := second.(*transit.RouteShape)
	require.Len(t, shape.Stops, 4)
	assert.Equal(t, "S4", shape.Stops[3].StopID)
}

func TestScheduleUnavailable(t *testing.T) {
	s := Source{Schedule: scheduletest.Static{Err: errors.New("download failed")}}

	_, err := s.Lookup(context.Background(), query.AllStops{})
	assert.ErrorIs(t, err, source.ErrScheduleUnavailable)
}

func TestUnsupportedQuery(t *testing.T) {
	s := Source{Schedule: scheduletest.Static{Err: errors.New("download failed")}}

	_, err := s.Lookup(context.Background(), query.Directions{})
	assert.ErrorIs(t, err, source.UnsupportedSourceError)
}
