// Package engine assembles the caches, clients and data sources described by a network profile.
package engine

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/setup"
	"github.com/travigo/busradar/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busradar/pkg/elastic_client"
	"github.com/travigo/busradar/pkg/livefeed"
	"github.com/travigo/busradar/pkg/metrics"
	"github.com/travigo/busradar/pkg/network"
	"github.com/travigo/busradar/pkg/redis_client"
	"github.com/travigo/busradar/pkg/routecode"
	"github.com/travigo/busradar/pkg/routing"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/snapshot"
	"github.com/travigo/busradar/pkg/transforms"
	"github.com/travigo/busradar/pkg/transit"
	"github.com/travigo/busradar/pkg/util"
)

type Options struct {
	Network        *network.Network
	ApproachPolicy string
	Redis          *redis.Client
}

type Engine struct {
	Network     *network.Network
	Metrics     *metrics.Collector
	Schedule    *snapshot.Cache[*schedule.Index]
	Feed        *livefeed.Feed
	RouteCodes  *routecode.Resolver
	Arrivals    *arrivals.Engine
	Transformer *transforms.Transformer
	Routing     *routing.Client
	Aggregator  *dataaggregator.Aggregator
}

// Load reads the network profile from networkFile, or BUSRADAR_NETWORK_FILE when empty,
// and builds an engine using the redis connection if one was made
func Load(networkFile string) (*Engine, error) {
	env := util.GetEnvironmentVariables()

	if networkFile == "" {
		networkFile = env["BUSRADAR_NETWORK_FILE"]
	}

	net, err := network.Load(networkFile)
	if err != nil {
		return nil, err
	}

	return New(Options{
		Network:        net,
		ApproachPolicy: env["BUSRADAR_APPROACH_POLICY"],
		Redis:          redis_client.Client,
	})
}

func New(options Options) (*Engine, error) {
	net := options.Network
	if net == nil {
		var err error
		if net, err = network.Default(); err != nil {
			return nil, err
		}
	}

	if options.ApproachPolicy != "" {
		net.Arrivals.ApproachPolicy = options.ApproachPolicy
	}
	policy, err := net.ApproachPolicy()
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		Network:     net,
		Metrics:     metrics.NewCollector(),
		Arrivals:    arrivals.NewEngine(net.ArrivalsEngineConfig(), policy),
		Transformer: transforms.NewTransformer(net.Transforms),
		Routing:     routing.NewClient(net.Routing.Endpoint, network.Duration(net.Routing.Timeout)),
	}

	observers := []snapshot.Option{
		snapshot.WithObserver(engine.Metrics),
		snapshot.WithObserver(elastic_client.NewEventSink()),
	}

	engine.Schedule = newScheduleCache(net, engine.Metrics, observers)

	liveClient := livefeed.NewClient(net.Live.Endpoint, net.Live.Namespace, network.Duration(net.Live.Timeout))
	engine.Feed = livefeed.NewFeed(
		liveClient,
		network.Duration(net.Live.Refresh),
		append(observers, snapshot.WithTimeout(network.Duration(net.Live.Timeout)))...,
	)

	if !net.RouteCodes.Disabled {
		engine.RouteCodes = routecode.NewResolver(liveClient, routecode.Config{
			Routes:         net.RouteCodes.Routes,
			Delay:          time.Duration(net.RouteCodes.DelayMS) * time.Millisecond,
			RequestTimeout: network.Duration(net.RouteCodes.Timeout),
			TTL:            network.Duration(net.RouteCodes.Refresh),
		}, observers...)
	}

	deps := setup.Dependencies{
		Schedule:      engine.Schedule,
		Vehicles:      countedVehicles{feed: engine.Feed, metrics: engine.Metrics},
		Arrivals:      engine.Arrivals,
		Transformer:   engine.Transformer,
		CachedResults: cachedresults.New(options.Redis, network.Duration(net.Schedule.Refresh)),
		Routing:       engine.Routing,
		StopRoutes:    net.Arrivals.StopRoutes,
		DefaultColour: net.Arrivals.DefaultColour,
	}
	if engine.RouteCodes != nil {
		deps.RouteCodes = observedRouteCodes{Resolver: engine.RouteCodes, metrics: engine.Metrics}
	}

	engine.Aggregator = setup.Setup(deps)

	log.Info().
		Str("network", net.Identifier).
		Str("timezone", net.Timezone).
		Bool("routecodes", engine.RouteCodes != nil).
		Int("transforms", engine.Transformer.Len()).
		Msg("Engine ready")

	return engine, nil
}

// Warm starts loading the schedule and route codes without waiting for either
func (e *Engine) Warm() {
	go func() {
		if _, err := e.Schedule.Get(context.Background()); err != nil {
			log.Error().Err(err).Msg("Initial schedule load failed")
		}
	}()

	if e.RouteCodes != nil {
		e.RouteCodes.Warm()
	}
}

func newScheduleCache(net *network.Network, collector *metrics.Collector, observers []snapshot.Option) *snapshot.Cache[*schedule.Index] {
	timeout := network.Duration(net.Schedule.Timeout)

	loader := schedule.NewLoader(net.Schedule.Sources, timeout)
	loader.Delimiter = net.Delimiter()
	loader.MaxRetries = net.Schedule.Retries

	// Every attempt may use the full per resource timeout
	rebuildTimeout := time.Duration(net.Schedule.Retries+1)*timeout + 30*time.Second

	return snapshot.New("schedule", network.Duration(net.Schedule.Refresh), func(ctx context.Context, _ *schedule.Index) (*schedule.Index, error) {
		index, err := loader.Load(ctx)
		if err != nil {
			return nil, err
		}

		collector.ObserveSchedule(index.Stats())

		return index, nil
	}, append(observers, snapshot.WithTimeout(rebuildTimeout))...)
}

type countedVehicles struct {
	feed    *livefeed.Feed
	metrics *metrics.Collector
}

func (c countedVehicles) Snapshot(ctx context.Context) ([]*transit.Vehicle, error) {
	vehicles, err := c.feed.Snapshot(ctx)
	if err == nil {
		c.metrics.ObserveVehicles(len(vehicles))
	}

	return vehicles, err
}

type observedRouteCodes struct {
	*routecode.Resolver
	metrics *metrics.Collector
}

func (o observedRouteCodes) Warm() {
	o.Resolver.Warm()
	o.metrics.ObserveResolvedDoors(o.Resolver.Len())
}
