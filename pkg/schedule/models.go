package schedule

import "github.com/travigo/busradar/pkg/tabular"

// Records are kept as strings so that a single malformed number drops a row
// instead of failing the whole table

type StopRecord struct {
	ID          string `csv:"stop_id"`
	Name        string `csv:"stop_name"`
	Description string `csv:"stop_desc"`
	Latitude    string `csv:"stop_lat"`
	Longitude   string `csv:"stop_lon"`
}

type RouteRecord struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Colour    string `csv:"route_color"`
}

type TripRecord struct {
	ID          string `csv:"trip_id"`
	RouteID     string `csv:"route_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID string `csv:"direction_id"`
}

type StopTimeRecord struct {
	TripID      string `csv:"trip_id"`
	StopID      string `csv:"stop_id"`
	ArrivalTime string `csv:"arrival_time"`
	Sequence    string `csv:"stop_sequence"`
}

var StopColumns = []tabular.Column{
	{Name: "stop_id", Fallbacks: []string{"id"}},
	{Name: "stop_name", Fallbacks: []string{"name"}},
	{Name: "stop_desc", Fallbacks: []string{"desc"}},
	{Name: "stop_lat", Fallbacks: []string{"lat"}},
	{Name: "stop_lon", Fallbacks: []string{"lon", "lng"}},
}

var RouteColumns = []tabular.Column{
	{Name: "route_id"},
	{Name: "route_short_name", Fallbacks: []string{"short_name"}},
	{Name: "route_long_name", Fallbacks: []string{"long_name"}},
	{Name: "route_color", Fallbacks: []string{"color", "colour"}},
}

var TripColumns = []tabular.Column{
	{Name: "trip_id"},
	{Name: "route_id"},
	{Name: "trip_headsign", Fallbacks: []string{"headsign"}},
	{Name: "direction_id", Fallbacks: []string{"direction"}},
}

var StopTimeColumns = []tabular.Column{
	{Name: "trip_id"},
	{Name: "stop_id"},
	{Name: "arrival_time", Fallbacks: []string{"arrival"}},
	{Name: "stop_sequence", Fallbacks: []string{"sequence"}},
}
