package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busradar/pkg/transit"
)

const osrmFixture = `{
  "code": "Ok",
  "routes": [{
    "distance": 1534.6,
    "duration": 1123.2,
    "geometry": {"type": "LineString", "coordinates": [[28.9784, 41.0082], [28.9812, 41.0101]]},
    "legs": [{
      "steps": [
        {"distance": 120.5, "duration": 80.1, "name": "Divanyolu Caddesi", "maneuver": {"type": "depart", "location": [28.9784, 41.0082]}},
        {"distance": 1400.1, "duration": 1040, "name": "", "maneuver": {"type": "turn", "modifier": "slight left", "location": [28.979, 41.009]}},
        {"distance": 0, "duration": 0, "name": "", "maneuver": {"type": "arrive", "location": [28.9812, 41.0101]}}
      ]
    }]
  }]
}`

func TestDirections(t *testing.T) {
	var requestedPath, requestedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		requestedQuery = r.URL.RawQuery
		w.Write([]byte(osrmFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	directions, err := client.Directions(context.Background(), transit.NewPoint(41.0082, 28.9784), transit.NewPoint(41.0101, 28.9812), ParseProfile("cycling"))
	require.NoError(t, err)

	assert.Equal(t, "/route/v1/cycling/28.9784,41.0082;28.9812,41.0101", requestedPath)
	assert.Equal(t, "overview=full&geometries=geojson&steps=true", requestedQuery)

	assert.Equal(t, 1535, directions.Distance)
	assert.Equal(t, 1123, directions.Duration)
	assert.Equal(t, "19 dk", directions.DurationText)
	assert.Equal(t, "1.5 km", directions.DistanceText)
	assert.Equal(t, "LineString", directions.Geometry.Type)
	assert.Len(t, directions.Geometry.Coordinates, 2)

	require.Len(t, directions.Steps, 3)
	assert.Equal(t, "Yola çık (Divanyolu Caddesi)", directions.Steps[0].Instruction)
	assert.Equal(t, "Divanyolu Caddesi", directions.Steps[0].Name)
	assert.Equal(t, "Hafif sola dön", directions.Steps[1].Instruction)
	assert.Equal(t, "Yol", directions.Steps[1].Name)
	assert.Equal(t, "slight left", directions.Steps[1].Maneuver.Modifier)
	assert.Equal(t, "Hedefe vardın", directions.Steps[2].Instruction)
}

func TestDirectionsNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.Directions(context.Background(), transit.NewPoint(41, 29), transit.NewPoint(40, 28), ProfileFoot)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestDirectionsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.Directions(context.Background(), transit.NewPoint(41, 29), transit.NewPoint(40, 28), ProfileFoot)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestParseProfile(t *testing.T) {
	assert.Equal(t, ProfileDriving, ParseProfile("driving"))
	assert.Equal(t, ProfileCycling, ParseProfile("cycling"))
	assert.Equal(t, ProfileFoot, ParseProfile("walking"))
	assert.Equal(t, ProfileFoot, ParseProfile(""))
}

func TestTranslateInstruction(t *testing.T) {
	tests := []struct {
		maneuverType string
		modifier     string
		street       string
		expected     string
	}{
		{"depart", "", "", "Yola çık"},
		{"turn", "right", "İstiklal Caddesi", "Sağa dön (İstiklal Caddesi)"},
		{"turn", "uturn", "", "U dönüşü yap"},
		{"turn", "straight", "", "Devam et"},
		{"turn", "", "", "Devam et"},
		{"fork", "left", "", "Soldan devam et"},
		{"end of road", "right", "", "Yol sonunda sağa dön"},
		{"roundabout", "right", "", "Dönel kavşaktan geç"},
		{"new name", "", "Atatürk Bulvarı", "Devam et (Atatürk Bulvarı)"},
		{"notification", "", "", "Devam et"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, TranslateInstruction(test.maneuverType, test.modifier, test.street))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 sn", FormatDuration(45.4))
	assert.Equal(t, "2 dk", FormatDuration(95))
	assert.Equal(t, "1 sa 0 dk", FormatDuration(3600))
	assert.Equal(t, "2 sa 5 dk", FormatDuration(7500))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "850 m", FormatDistance(849.6))
	assert.Equal(t, "1.0 km", FormatDistance(1000))
	assert.Equal(t, "12.3 km", FormatDistance(12345))
}
