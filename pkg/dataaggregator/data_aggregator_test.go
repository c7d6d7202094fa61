package dataaggregator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/transit"
)

type fakeSource struct {
	name     string
	supports []reflect.Type
	lookup   func(q any) (interface{}, error)
}

func (f fakeSource) GetName() string          { return f.name }
func (f fakeSource) Supports() []reflect.Type { return f.supports }
func (f fakeSource) Lookup(ctx context.Context, q any) (interface{}, error) {
	return f.lookup(q)
}

func TestLookupPicksSupportingSource(t *testing.T) {
	aggregator := &Aggregator{}
	aggregator.RegisterSource(fakeSource{
		name:     "routes",
		supports: []reflect.Type{reflect.TypeOf(transit.Route{})},
		lookup: func(q any) (interface{}, error) {
			return &transit.Route{ID: "R1"}, nil
		},
	})
	aggregator.RegisterSource(fakeSource{
		name:     "stops",
		supports: []reflect.Type{reflect.TypeOf(transit.Stop{})},
		lookup: func(q any) (interface{}, error) {
			return &transit.Stop{ID: q.(string)}, nil
		},
	})

	stop, err := Lookup[*transit.Stop](context.Background(), aggregator, "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", stop.ID)

	route, err := Lookup[*transit.Route](context.Background(), aggregator, "anything")
	require.NoError(t, err)
	assert.Equal(t, "R1", route.ID)
}

func TestLookupFallsThroughUnsupported(t *testing.T) {
	aggregator := &Aggregator{}
	aggregator.RegisterSource(fakeSource{
		name:     "declines",
		supports: []reflect.Type{reflect.TypeOf([]*transit.Stop{})},
		lookup: func(q any) (interface{}, error) {
			return nil, source.UnsupportedSourceError
		},
	})
	aggregator.RegisterSource(fakeSource{
		name:     "answers",
		supports: []reflect.Type{reflect.TypeOf([]*transit.Stop{})},
		lookup: func(q any) (interface{}, error) {
			return []*transit.Stop{{ID: "S2"}}, nil
		},
	})

	stops, err := Lookup[[]*transit.Stop](context.Background(), aggregator, struct{}{})
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "S2", stops[0].ID)
}

func TestLookupPropagatesErrors(t *testing.T) {
	lookupErr := errors.New("broken")

	aggregator := &Aggregator{}
	aggregator.RegisterSource(fakeSource{
		name:     "fails",
		supports: []reflect.Type{reflect.TypeOf(transit.Stop{})},
		lookup: func(q any) (interface{}, error) {
			return nil, lookupErr
		},
	})

	_, err := Lookup[*transit.Stop](context.Background(), aggregator, "S1")
	assert.ErrorIs(t, err, lookupErr)
}

func TestLookupNoSource(t *testing.T) {
	_, err := Lookup[*transit.Stop](context.Background(), &Aggregator{}, "S1")
	assert.ErrorIs(t, err, ErrNoMatchingSource)
}

func TestLookupWrongReturnType(t *testing.T) {
	aggregator := &Aggregator{}
	aggregator.RegisterSource(fakeSource{
		name:     "confused",
		supports: []reflect.Type{reflect.TypeOf(transit.Stop{})},
		lookup: func(q any) (interface{}, error) {
			return &transit.Route{}, nil
		},
	})

	_, err := Lookup[*transit.Stop](context.Background(), aggregator, "S1")
	assert.Error(t, err)
}
