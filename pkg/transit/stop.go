package transit

type Stop struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"-"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
}

func (s *Stop) Location() *Location {
	return NewPoint(s.Latitude, s.Longitude)
}

// NearbyStop is a stop annotated with its rounded distance from a query point
type NearbyStop struct {
	*Stop
	Distance int `json:"distance"`
}

// StopVisit is one trip's scheduled passage through a stop
type StopVisit struct {
	StopID      string
	Sequence    int
	ArrivalTime string
}
