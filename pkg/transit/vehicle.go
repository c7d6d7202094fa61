package transit

// Vehicle is a single live bus position as reported by the fleet feed
type Vehicle struct {
	DoorNumber string
	Plate      string
	Operator   string
	Depot      string
	Latitude   float64
	Longitude  float64
	Speed      float64
	LastUpdate string
}

func (v *Vehicle) Location() *Location {
	return NewPoint(v.Latitude, v.Longitude)
}

// RouteCodeEntry maps a vehicle door number onto the public route it is running
type RouteCodeEntry struct {
	DoorNumber string
	RouteCode  string
	RouteName  string
	Direction  string
}
