package setup

import (
	"github.com/travigo/busradar/pkg/arrivals"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/source"
	"github.com/travigo/busradar/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/busradar/pkg/dataaggregator/source/livearrivals"
	"github.com/travigo/busradar/pkg/dataaggregator/source/routing"
	"github.com/travigo/busradar/pkg/dataaggregator/source/schedulelookup"
	osrm "github.com/travigo/busradar/pkg/routing"
	"github.com/travigo/busradar/pkg/transforms"
)

type Dependencies struct {
	Schedule      source.Schedule
	Vehicles      source.Vehicles
	RouteCodes    livearrivals.RouteCodes
	Arrivals      *arrivals.Engine
	Transformer   *transforms.Transformer
	CachedResults *cachedresults.Cache
	Routing       *osrm.Client

	StopRoutes    int
	DefaultColour string
}

func Setup(deps Dependencies) *dataaggregator.Aggregator {
	aggregator := &dataaggregator.Aggregator{}

	aggregator.RegisterSource(schedulelookup.Source{
		Schedule:      deps.Schedule,
		CachedResults: deps.CachedResults,
		Transformer:   deps.Transformer,
		DefaultColour: deps.DefaultColour,
	})

	aggregator.RegisterSource(livearrivals.Source{
		Schedule:      deps.Schedule,
		Vehicles:      deps.Vehicles,
		RouteCodes:    deps.RouteCodes,
		Engine:        deps.Arrivals,
		Transformer:   deps.Transformer,
		StopRoutes:    deps.StopRoutes,
		DefaultColour: deps.DefaultColour,
	})

	if deps.Routing != nil {
		aggregator.RegisterSource(routing.Source{
			Client: deps.Routing,
		})
	}

	return aggregator
}
