package transit

type Directions struct {
	Distance     int             `json:"distance"`
	Duration     int             `json:"duration"`
	DurationText string          `json:"durationText"`
	DistanceText string          `json:"distanceText"`
	Geometry     *LineString     `json:"geometry"`
	Steps        []DirectionStep `json:"steps"`
}

type DirectionStep struct {
	Instruction string   `json:"instruction"`
	Distance    float64  `json:"distance"`
	Duration    float64  `json:"duration"`
	Name        string   `json:"name"`
	Maneuver    Maneuver `json:"maneuver"`
}

type Maneuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier,omitempty"`
	Location []float64 `json:"location"`
}
