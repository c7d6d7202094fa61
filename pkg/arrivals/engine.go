package arrivals

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/routecode"
	"github.com/travigo/busradar/pkg/transit"
)

// ErrLiveDataUnavailable means there was no vehicle data at all, as opposed to no vehicles nearby
var ErrLiveDataUnavailable = errors.New("arrivals: live data unavailable")

type Resolver interface {
	Resolve(doorNumber string) routecode.Resolution
}

type Config struct {
	SearchRadius  float64
	MaxArrivals   int
	AverageSpeed  float64
	Palette       []string
	OperatorNames []OperatorName
	Location      *time.Location
}

var DefaultConfig = Config{
	SearchRadius:  2000,
	MaxArrivals:   10,
	AverageSpeed:  20,
	Palette:       DefaultPalette,
	OperatorNames: DefaultOperatorNames,
}

type Engine struct {
	config Config
	policy ApproachPolicy
	now    func() time.Time
}

func NewEngine(config Config, policy ApproachPolicy) *Engine {
	if policy == nil {
		policy = DefaultThresholdPolicy
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.AverageSpeed <= 0 {
		config.AverageSpeed = DefaultConfig.AverageSpeed
	}

	return &Engine{
		config: config,
		policy: policy,
		now:    time.Now,
	}
}

type candidateVehicle struct {
	vehicle  *transit.Vehicle
	distance float64
}

// Match ranks the vehicles approaching the point, soonest first
func (e *Engine) Match(point *transit.Location, vehicles []*transit.Vehicle, resolver Resolver) ([]*transit.Arrival, error) {
	if len(vehicles) == 0 {
		return nil, ErrLiveDataUnavailable
	}

	var nearby []candidateVehicle
	inRadius := 0

	for _, vehicle := range vehicles {
		distance := point.Distance(vehicle.Location())
		if distance > e.config.SearchRadius {
			continue
		}
		inRadius++

		if e.policy.Approaching(Candidate{Distance: distance, Speed: vehicle.Speed}) {
			nearby = append(nearby, candidateVehicle{vehicle: vehicle, distance: distance})
		}
	}

	sort.SliceStable(nearby, func(a, b int) bool {
		return nearby[a].distance < nearby[b].distance
	})

	if e.config.MaxArrivals > 0 && len(nearby) > e.config.MaxArrivals {
		nearby = nearby[:e.config.MaxArrivals]
	}

	log.Debug().Int("radius", inRadius).Int("approaching", len(nearby)).Msg("Matched vehicles to stop")

	now := e.now()
	arrivals := make([]*transit.Arrival, 0, len(nearby))

	for _, candidate := range nearby {
		arrivals = append(arrivals, e.buildArrival(point, candidate, resolver, now))
	}

	sort.SliceStable(arrivals, func(a, b int) bool {
		return arrivals[a].MinutesUntilArrival < arrivals[b].MinutesUntilArrival
	})

	return arrivals, nil
}

func (e *Engine) buildArrival(point *transit.Location, candidate candidateVehicle, resolver Resolver, now time.Time) *transit.Arrival {
	vehicle := candidate.vehicle

	minutes := EstimateMinutes(candidate.distance, e.config.AverageSpeed)

	var resolution routecode.Resolution
	if resolver != nil {
		resolution = resolver.Resolve(vehicle.DoorNumber)
	} else {
		resolution = routecode.Resolution{RouteCode: vehicle.DoorNumber}
	}

	operator := FormatOperator(vehicle.Operator, e.config.OperatorNames)
	depot := FormatDepot(vehicle.Depot)

	routeName := resolution.RouteName
	if routeName == "" {
		routeName = fmt.Sprintf("%s - %s", operator, depot)
	}

	destination := resolution.Direction
	if destination == "" {
		destination = depot
	}

	vehicleID := vehicle.Plate
	if vehicleID == "" {
		vehicleID = vehicle.DoorNumber
	}

	return &transit.Arrival{
		RouteID:             resolution.RouteCode,
		RouteShortName:      resolution.RouteCode,
		RouteLongName:       routeName,
		DoorNumber:          vehicle.DoorNumber,
		Operator:            operator,
		Depot:               depot,
		Colour:              RouteColour(resolution.RouteCode, e.config.Palette),
		MinutesUntilArrival: minutes,
		ArrivalTime:         now.Add(time.Duration(minutes) * time.Minute).In(e.config.Location).Format("15:04"),
		Destination:         destination,
		IsLive:              true,
		HasRouteCode:        resolution.Confident,
		VehicleID:           vehicleID,
		Location: transit.LatLng{
			Latitude:  vehicle.Latitude,
			Longitude: vehicle.Longitude,
		},
		Heading:    vehicle.Location().BearingTo(point),
		Speed:      vehicle.Speed,
		Distance:   int(math.Round(candidate.distance)),
		LastUpdate: vehicle.LastUpdate,
	}
}

// EstimateMinutes assumes a constant average speed in km/h and never estimates below a minute
func EstimateMinutes(distance float64, averageSpeed float64) int {
	minutes := int(math.Round(distance / 1000 / averageSpeed * 60))
	if minutes < 1 {
		return 1
	}

	return minutes
}
