package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/transit"
)

const DefaultEndpoint = "https://router.project-osrm.org"

var (
	ErrNoRoute   = errors.New("routing: no route found")
	ErrTransport = errors.New("routing: transport failure")
)

type Profile string

const (
	ProfileFoot    Profile = "foot"
	ProfileDriving Profile = "driving"
	ProfileCycling Profile = "cycling"
)

// ParseProfile maps a travel mode onto an OSRM profile, anything unknown walks
func ParseProfile(mode string) Profile {
	switch mode {
	case "driving":
		return ProfileDriving
	case "cycling":
		return ProfileCycling
	default:
		return ProfileFoot
	}
}

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64             `json:"distance"`
	Duration float64             `json:"duration"`
	Geometry *transit.LineString `json:"geometry"`
	Legs     []struct {
		Steps []osrmStep `json:"steps"`
	} `json:"legs"`
}

type osrmStep struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Name     string  `json:"name"`
	Maneuver struct {
		Type     string    `json:"type"`
		Modifier string    `json:"modifier"`
		Location []float64 `json:"location"`
	} `json:"maneuver"`
}

// Directions asks OSRM for a route between two points and localises the turn by turn steps
func (c *Client) Directions(ctx context.Context, from *transit.Location, to *transit.Location, profile Profile) (*transit.Directions, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%s,%s;%s,%s?overview=full&geometries=geojson&steps=true",
		c.Endpoint, profile,
		formatCoordinate(from.Longitude()), formatCoordinate(from.Latitude()),
		formatCoordinate(to.Longitude()), formatCoordinate(to.Latitude()),
	)

	log.Debug().Str("url", url).Msg("Requesting directions")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	var response osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	if response.Code != "Ok" || len(response.Routes) == 0 {
		return nil, ErrNoRoute
	}

	return buildDirections(response.Routes[0]), nil
}

func buildDirections(route osrmRoute) *transit.Directions {
	directions := &transit.Directions{
		Distance:     int(math.Round(route.Distance)),
		Duration:     int(math.Round(route.Duration)),
		DurationText: FormatDuration(route.Duration),
		DistanceText: FormatDistance(route.Distance),
		Geometry:     route.Geometry,
		Steps:        []transit.DirectionStep{},
	}

	if len(route.Legs) == 0 {
		return directions
	}

	for _, step := range route.Legs[0].Steps {
		name := step.Name
		if name == "" {
			name = "Yol"
		}

		directions.Steps = append(directions.Steps, transit.DirectionStep{
			Instruction: TranslateInstruction(step.Maneuver.Type, step.Maneuver.Modifier, step.Name),
			Distance:    step.Distance,
			Duration:    step.Duration,
			Name:        name,
			Maneuver: transit.Maneuver{
				Type:     step.Maneuver.Type,
				Modifier: step.Maneuver.Modifier,
				Location: step.Maneuver.Location,
			},
		})
	}

	return directions
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
