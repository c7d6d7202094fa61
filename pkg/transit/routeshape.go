package transit

type ShapeStop struct {
	StopID    string  `json:"stop_id"`
	Name      string  `json:"stop_name"`
	Latitude  float64 `json:"stop_lat"`
	Longitude float64 `json:"stop_lon"`
	Sequence  int     `json:"stop_sequence"`
}

type RouteShape struct {
	Route       RouteSummary `json:"route"`
	Stops       []ShapeStop  `json:"stops"`
	LineGeoJSON *Feature     `json:"lineGeoJSON"`
}

type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type Feature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   *LineString       `json:"geometry"`
}

func NewLineString(locations []*Location) *LineString {
	coordinates := make([][]float64, 0, len(locations))
	for _, location := range locations {
		coordinates = append(coordinates, []float64{location.Longitude(), location.Latitude()})
	}

	return &LineString{
		Type:        "LineString",
		Coordinates: coordinates,
	}
}
