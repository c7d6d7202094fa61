package network

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/transforms"
	"github.com/travigo/busradar/pkg/util"
	"gopkg.in/yaml.v3"
)

//go:embed networks/iett.yaml
var defaultNetworkYaml []byte

type Provider struct {
	Name    string
	Website string
}

type Point struct {
	Lat float64
	Lng float64
}

type ScheduleConfig struct {
	Refresh   string
	Timeout   string
	Retries   uint64
	Delimiter string
	Sources   schedule.Sources
}

type LiveConfig struct {
	Endpoint  string
	Namespace string
	Refresh   string
	Timeout   string
}

type RouteCodeConfig struct {
	Disabled bool
	Refresh  string
	Timeout  string
	DelayMS  int
	Routes   []string
}

type ArrivalsConfig struct {
	SearchRadius   float64
	MaxArrivals    int
	AverageSpeed   float64
	StopRoutes     int
	DefaultPoint   Point
	DefaultColour  string
	Palette        []string
	OperatorNames  []arrivals.OperatorName
	ApproachPolicy string
}

type RoutingConfig struct {
	Endpoint string
	Timeout  string
}

// Network describes one transit authority: where its data lives and how it is presented
type Network struct {
	Identifier string
	Region     string
	Timezone   string
	Provider   Provider

	Schedule   ScheduleConfig
	Live       LiveConfig
	RouteCodes RouteCodeConfig
	Arrivals   ArrivalsConfig
	Routing    RoutingConfig

	Transforms []*transforms.Definition

	location *time.Location
}

// Default returns the embedded Istanbul IETT network
func Default() (*Network, error) {
	var network Network
	if err := yaml.Unmarshal(defaultNetworkYaml, &network); err != nil {
		return nil, fmt.Errorf("default network: %w", err)
	}

	if err := network.validate(); err != nil {
		return nil, err
	}

	return &network, nil
}

// Load merges every document of the yaml file at path onto the default network.
// Only non-empty fields of the override replace defaults.
func Load(path string) (*Network, error) {
	network, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return network, nil
	}

	overrideYaml, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Msg("Loading network file")

	decoder := yaml.NewDecoder(bytes.NewReader(overrideYaml))

	for {
		var override Network
		err := decoder.Decode(&override)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("network file %s: %w", path, err)
		}

		if err := network.merge(&override); err != nil {
			return nil, err
		}
	}

	if err := network.validate(); err != nil {
		return nil, err
	}

	return network, nil
}

func (n *Network) merge(override *Network) error {
	err := copier.CopyWithOption(n, override, copier.Option{IgnoreEmpty: true, DeepCopy: true})
	if err != nil {
		return err
	}

	// Lists replace rather than extend
	if len(override.RouteCodes.Routes) > 0 {
		n.RouteCodes.Routes = override.RouteCodes.Routes
	}
	if len(override.Arrivals.Palette) > 0 {
		n.Arrivals.Palette = override.Arrivals.Palette
	}
	if len(override.Arrivals.OperatorNames) > 0 {
		n.Arrivals.OperatorNames = override.Arrivals.OperatorNames
	}
	if len(override.Transforms) > 0 {
		n.Transforms = override.Transforms
	}

	return nil
}

func (n *Network) validate() error {
	location, err := time.LoadLocation(n.Timezone)
	if err != nil {
		return fmt.Errorf("network %s timezone: %w", n.Identifier, err)
	}
	n.location = location

	durations := map[string]string{
		"schedule.refresh":   n.Schedule.Refresh,
		"schedule.timeout":   n.Schedule.Timeout,
		"live.refresh":       n.Live.Refresh,
		"live.timeout":       n.Live.Timeout,
		"routecodes.refresh": n.RouteCodes.Refresh,
		"routecodes.timeout": n.RouteCodes.Timeout,
		"routing.timeout":    n.Routing.Timeout,
	}
	for name, value := range durations {
		if _, err := util.ParseDuration(value); err != nil {
			return fmt.Errorf("network %s %s %q: %w", n.Identifier, name, value, err)
		}
	}

	if len([]rune(n.Schedule.Delimiter)) != 1 {
		return fmt.Errorf("network %s schedule.delimiter must be a single character", n.Identifier)
	}

	return nil
}

func (n *Network) Location() *time.Location {
	if n.location == nil {
		return time.UTC
	}

	return n.location
}

// Duration parses a profile duration, which validate has already checked
func Duration(value string) time.Duration {
	duration, _ := util.ParseDuration(value)
	return duration
}

func (n *Network) Delimiter() rune {
	return []rune(n.Schedule.Delimiter)[0]
}

func (n *Network) ArrivalsEngineConfig() arrivals.Config {
	return arrivals.Config{
		SearchRadius:  n.Arrivals.SearchRadius,
		MaxArrivals:   n.Arrivals.MaxArrivals,
		AverageSpeed:  n.Arrivals.AverageSpeed,
		Palette:       n.Arrivals.Palette,
		OperatorNames: n.Arrivals.OperatorNames,
		Location:      n.Location(),
	}
}

// ApproachPolicy returns the configured expression policy, or the fixed thresholds
func (n *Network) ApproachPolicy() (arrivals.ApproachPolicy, error) {
	if n.Arrivals.ApproachPolicy == "" {
		return arrivals.DefaultThresholdPolicy, nil
	}

	return arrivals.NewExprPolicy(n.Arrivals.ApproachPolicy)
}
