package transit

type Route struct {
	ID        string
	ShortName string
	LongName  string
	Colour    string
}

type Trip struct {
	ID          string
	RouteID     string
	Headsign    string
	DirectionID string
}

// RouteSummary is the wire shape of a route attached to stops, arrivals and route shapes
type RouteSummary struct {
	RouteID   string `json:"route_id" groups:"basic,detailed"`
	ShortName string `json:"route_short_name" groups:"basic,detailed"`
	LongName  string `json:"route_long_name" groups:"basic,detailed"`
	Colour    string `json:"route_color" groups:"basic,detailed"`
}

func (r *Route) Summary(defaultColour string) RouteSummary {
	colour := r.Colour
	if colour == "" {
		colour = defaultColour
	}

	return RouteSummary{
		RouteID:   r.ID,
		ShortName: r.ShortName,
		LongName:  r.LongName,
		Colour:    colour,
	}
}
