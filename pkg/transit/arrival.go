package transit

type Arrival struct {
	RouteID        string `json:"routeId" groups:"basic,detailed"`
	RouteShortName string `json:"routeShortName" groups:"basic,detailed"`
	RouteLongName  string `json:"routeLongName" groups:"basic,detailed"`
	DoorNumber     string `json:"kapiNo" groups:"basic,detailed"`
	Operator       string `json:"operator" groups:"detailed"`
	Depot          string `json:"garaj" groups:"detailed"`
	Colour         string `json:"routeColor" groups:"basic,detailed"`

	MinutesUntilArrival int    `json:"minutesUntilArrival" groups:"basic,detailed"`
	ArrivalTime         string `json:"arrivalTime" groups:"basic,detailed"`
	Destination         string `json:"destination" groups:"basic,detailed"`

	IsLive       bool `json:"isLive" groups:"basic,detailed"`
	HasRouteCode bool `json:"hasHatKodu" groups:"basic,detailed"`

	VehicleID  string  `json:"vehicleId" groups:"basic,detailed"`
	Location   LatLng  `json:"location" groups:"basic,detailed"`
	Heading    float64 `json:"heading" groups:"basic,detailed"`
	Speed      float64 `json:"speed" groups:"detailed"`
	Distance   int     `json:"distance" groups:"basic,detailed"`
	LastUpdate string  `json:"lastUpdate" groups:"detailed"`
}

// ArrivalBoard is the full answer to an arrivals request for one stop
type ArrivalBoard struct {
	StopID     string         `json:"stopId" groups:"basic,detailed"`
	Arrivals   []*Arrival     `json:"arrivals" groups:"basic,detailed"`
	StopRoutes []RouteSummary `json:"stopRoutes" groups:"basic,detailed"`
	Count      int            `json:"count" groups:"basic,detailed"`
	IsRealtime bool           `json:"isRealtime" groups:"basic,detailed"`
	Message    string         `json:"message,omitempty" groups:"basic,detailed"`
}
