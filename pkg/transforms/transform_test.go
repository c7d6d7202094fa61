package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/busradar/pkg/transit"
)

func testTransformer() *Transformer {
	return NewTransformer([]*Definition{
		{
			Type:  "transit.Arrival",
			Match: map[string]string{"RouteShortName": "34"},
			Data:  map[string]interface{}{"Colour": "ff5a00"},
		},
		{
			Type:  "transit.RouteSummary",
			Match: map[string]string{"ShortName": "34"},
			Data:  map[string]interface{}{"Colour": "ff5a00", "LongName": "Metrobüs"},
		},
		{
			Type:  "transit.Arrival",
			Match: map[string]string{"Distance": "10"},
			Data:  map[string]interface{}{"Colour": "000000"},
		},
	})
}

func TestTransformArrivalBoard(t *testing.T) {
	board := &transit.ArrivalBoard{
		Arrivals: []*transit.Arrival{
			{RouteShortName: "34", Colour: "053e73", Distance: 10},
			{RouteShortName: "500T", Colour: "3498db", Distance: 10},
		},
		StopRoutes: []transit.RouteSummary{
			{ShortName: "34", LongName: "Zincirlikuyu - Söğütlüçeşme", Colour: "053e73"},
			{ShortName: "15F", Colour: "053e73"},
		},
	}

	testTransformer().Transform(board)

	assert.Equal(t, "ff5a00", board.Arrivals[0].Colour)
	assert.Equal(t, "3498db", board.Arrivals[1].Colour)
	assert.Equal(t, "ff5a00", board.StopRoutes[0].Colour)
	assert.Equal(t, "Metrobüs", board.StopRoutes[0].LongName)
	assert.Equal(t, "053e73", board.StopRoutes[1].Colour)
}

func TestTransformSlice(t *testing.T) {
	arrivals := []*transit.Arrival{{RouteShortName: "34"}}

	testTransformer().Transform(arrivals)

	assert.Equal(t, "ff5a00", arrivals[0].Colour)
}

func TestTransformIgnoresUnsettable(t *testing.T) {
	arrival := transit.Arrival{RouteShortName: "34"}

	testTransformer().Transform(arrival)

	assert.Equal(t, "", arrival.Colour)
}

func TestTransformWrongValueType(t *testing.T) {
	transformer := NewTransformer([]*Definition{{
		Type:  "transit.Arrival",
		Match: map[string]string{"RouteShortName": "34"},
		Data:  map[string]interface{}{"Colour": []string{"red"}},
	}})

	arrival := &transit.Arrival{RouteShortName: "34", Colour: "053e73"}
	transformer.Transform(arrival)

	assert.Equal(t, "053e73", arrival.Colour)
	assert.Equal(t, 1, transformer.Len())
}

func TestNilTransformer(t *testing.T) {
	var transformer *Transformer

	assert.NotPanics(t, func() {
		transformer.Transform(&transit.Arrival{})
	})
}
