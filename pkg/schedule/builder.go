package schedule

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/tabular"
	"github.com/travigo/busradar/pkg/transit"
)

const unknownStopName = "Bilinmiyor"

var directionRegex = regexp.MustCompile(`(?i)direction:\s*(.+)`)

// Tables are the four decoded static dataset resources
type Tables struct {
	Stops     *tabular.Table
	Routes    *tabular.Table
	Trips     *tabular.Table
	StopTimes *tabular.Table
}

// Build produces a new index. Any table that cannot be unmarshalled fails the whole build.
func Build(tables Tables) (*Index, error) {
	var stopRecords []StopRecord
	var routeRecords []RouteRecord
	var tripRecords []TripRecord
	var stopTimeRecords []StopTimeRecord

	decodeTargets := []struct {
		name    string
		table   *tabular.Table
		columns []tabular.Column
		out     interface{}
	}{
		{"stops", tables.Stops, StopColumns, &stopRecords},
		{"routes", tables.Routes, RouteColumns, &routeRecords},
		{"trips", tables.Trips, TripColumns, &tripRecords},
		{"stop_times", tables.StopTimes, StopTimeColumns, &stopTimeRecords},
	}

	for _, target := range decodeTargets {
		if target.table == nil {
			return nil, fmt.Errorf("%w: %s table missing", ErrParse, target.name)
		}

		if err := target.table.Unmarshal(target.columns, target.out); err != nil {
			return nil, fmt.Errorf("%w: %s: %s", ErrParse, target.name, err)
		}
	}

	index := newIndex()

	index.addStops(stopRecords)
	index.addRoutes(routeRecords)
	index.addTrips(tripRecords)
	index.addStopTimes(stopTimeRecords)

	log.Debug().
		Int("stops", len(index.stops)).
		Int("routes", len(index.routes)).
		Int("trips", len(index.trips)).
		Int("stoproutes", len(index.stopRoutes)).
		Int("tripvisits", len(index.tripVisits)).
		Msg("Built schedule index")

	return index, nil
}

func (i *Index) addStops(records []StopRecord) {
	dropped := 0

	for _, record := range records {
		latitude, latErr := parseCoordinate(record.Latitude)
		longitude, lonErr := parseCoordinate(record.Longitude)

		if record.ID == "" || latErr != nil || lonErr != nil {
			dropped++
			continue
		}

		name := record.Name
		if name == "" {
			name = unknownStopName
		}

		if matches := directionRegex.FindStringSubmatch(record.Description); len(matches) == 2 {
			if direction := strings.TrimSpace(matches[1]); direction != "" {
				name = fmt.Sprintf("%s (%s)", name, direction)
			}
		}

		if _, exists := i.stops[record.ID]; !exists {
			i.stopOrder = append(i.stopOrder, record.ID)
		}

		i.stops[record.ID] = &transit.Stop{
			ID:          record.ID,
			Name:        name,
			Description: record.Description,
			Latitude:    latitude,
			Longitude:   longitude,
		}
	}

	if dropped > 0 {
		log.Debug().Int("count", dropped).Msg("Dropped stops with unusable coordinates")
	}
}

func (i *Index) addRoutes(records []RouteRecord) {
	for _, record := range records {
		if record.ID == "" || record.ShortName == "" {
			continue
		}

		route := &transit.Route{
			ID:        record.ID,
			ShortName: record.ShortName,
			LongName:  record.LongName,
			Colour:    record.Colour,
		}

		i.routes = append(i.routes, route)
		if _, exists := i.routesByID[route.ID]; !exists {
			i.routesByID[route.ID] = route
		}
	}
}

func (i *Index) addTrips(records []TripRecord) {
	for _, record := range records {
		if record.ID == "" || record.RouteID == "" {
			continue
		}

		direction := record.DirectionID
		if direction == "" {
			direction = "0"
		}

		if _, exists := i.trips[record.ID]; !exists {
			i.routeTrips[record.RouteID] = append(i.routeTrips[record.RouteID], record.ID)
		}

		i.trips[record.ID] = &transit.Trip{
			ID:          record.ID,
			RouteID:     record.RouteID,
			Headsign:    record.Headsign,
			DirectionID: direction,
		}
	}
}

func (i *Index) addStopTimes(records []StopTimeRecord) {
	stopRouteSeen := map[string]map[string]bool{}
	unknownTrips := 0
	unknownStops := 0

	for _, record := range records {
		if record.TripID == "" || record.StopID == "" {
			continue
		}

		trip, exists := i.trips[record.TripID]
		if !exists {
			unknownTrips++
			continue
		}

		if _, exists := i.stops[record.StopID]; !exists {
			unknownStops++
			continue
		}

		if stopRouteSeen[record.StopID] == nil {
			stopRouteSeen[record.StopID] = map[string]bool{}
		}
		if !stopRouteSeen[record.StopID][trip.RouteID] {
			stopRouteSeen[record.StopID][trip.RouteID] = true
			i.stopRoutes[record.StopID] = append(i.stopRoutes[record.StopID], trip.RouteID)
		}

		sequence := parseSequence(record.Sequence)

		i.tripVisits[record.TripID] = append(i.tripVisits[record.TripID], transit.StopVisit{
			StopID:      record.StopID,
			Sequence:    sequence,
			ArrivalTime: record.ArrivalTime,
		})
	}

	// Only sorted once everything has been ingested
	for _, visits := range i.tripVisits {
		sort.SliceStable(visits, func(a, b int) bool {
			return visits[a].Sequence < visits[b].Sequence
		})
	}

	log.Debug().Int("unknowntrips", unknownTrips).Int("unknownstops", unknownStops).Msg("Skipped stop times")
}

func parseCoordinate(value string) (float64, error) {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", value)
	}

	return number, nil
}

func parseSequence(value string) int {
	value = strings.TrimSpace(value)

	if sequence, err := strconv.Atoi(value); err == nil {
		return sequence
	}

	if number, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(number) && !math.IsInf(number, 0) {
		return int(number)
	}

	return 0
}
