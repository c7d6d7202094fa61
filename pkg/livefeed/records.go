package livefeed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/travigo/busradar/pkg/transit"
)

// looseString accepts JSON strings, numbers and null
type looseString string

func (l *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = looseString(s)
		return nil
	}

	*l = looseString(data)
	return nil
}

func (l looseString) String() string {
	return strings.TrimSpace(string(l))
}

// Number parses the value tolerating stray spaces and a decimal comma
func (l looseString) Number() (float64, bool) {
	cleaned := strings.ReplaceAll(string(l), " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}

	return number, true
}

type fleetRecord struct {
	DoorNumber looseString `json:"KapiNo"`
	Operator   looseString `json:"Operator"`
	Depot      looseString `json:"Garaj"`
	Plate      looseString `json:"Plaka"`
	Latitude   looseString `json:"Enlem"`
	Longitude  looseString `json:"Boylam"`
	Speed      looseString `json:"Hiz"`
	Time       looseString `json:"Saat"`
}

type routeRecord struct {
	DoorNumber looseString `json:"kapino"`
	RouteCode  looseString `json:"hatkodu"`
	RouteName  looseString `json:"hatad"`
	Direction  looseString `json:"yon"`
}

func parseFleetPayload(payload []byte) ([]*transit.Vehicle, error) {
	var records []fleetRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}

	vehicles := make([]*transit.Vehicle, 0, len(records))

	for _, record := range records {
		latitude, latOK := record.Latitude.Number()
		longitude, lonOK := record.Longitude.Number()
		if !latOK || !lonOK {
			continue
		}

		speed, _ := record.Speed.Number()

		vehicles = append(vehicles, &transit.Vehicle{
			DoorNumber: record.DoorNumber.String(),
			Plate:      record.Plate.String(),
			Operator:   record.Operator.String(),
			Depot:      record.Depot.String(),
			Latitude:   latitude,
			Longitude:  longitude,
			Speed:      speed,
			LastUpdate: record.Time.String(),
		})
	}

	return vehicles, nil
}

func parseRoutePayload(payload []byte) ([]*transit.RouteCodeEntry, error) {
	var records []routeRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err)
	}

	var entries []*transit.RouteCodeEntry
	for _, record := range records {
		if record.DoorNumber.String() == "" {
			continue
		}

		entries = append(entries, &transit.RouteCodeEntry{
			DoorNumber: record.DoorNumber.String(),
			RouteCode:  record.RouteCode.String(),
			RouteName:  record.RouteName.String(),
			Direction:  record.Direction.String(),
		})
	}

	return entries, nil
}
