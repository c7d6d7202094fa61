package transit

import "github.com/travigo/busradar/pkg/geo"

// Location is a GeoJSON style point with coordinates stored as [longitude, latitude]
type Location struct {
	Type        string    `json:"type" groups:"basic,detailed"`
	Coordinates []float64 `json:"coordinates" groups:"basic,detailed"`
}

func NewPoint(latitude, longitude float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}

// Distance to another location in metres
func (l *Location) Distance(other *Location) float64 {
	return geo.Distance(l.Latitude(), l.Longitude(), other.Latitude(), other.Longitude())
}

func (l *Location) BearingTo(other *Location) float64 {
	return geo.Bearing(l.Latitude(), l.Longitude(), other.Latitude(), other.Longitude())
}

func (l *Location) InBounds(bounds Bounds) bool {
	return l.Latitude() >= bounds.MinLatitude && l.Latitude() <= bounds.MaxLatitude &&
		l.Longitude() >= bounds.MinLongitude && l.Longitude() <= bounds.MaxLongitude
}

type Bounds struct {
	MinLatitude  float64
	MinLongitude float64
	MaxLatitude  float64
	MaxLongitude float64
}

// LatLng is the flat coordinate pair the presentation layer expects
type LatLng struct {
	Latitude  float64 `json:"lat" groups:"basic,detailed"`
	Longitude float64 `json:"lng" groups:"basic,detailed"`
}
