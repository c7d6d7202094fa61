package routecode

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/snapshot"
	"github.com/travigo/busradar/pkg/transit"
	"github.com/travigo/busradar/pkg/util"
)

// Routes polled to discover door number to route code mappings. Kept short to
// stay under the remote service's rate limits.
var DefaultRoutes = []string{
	"500T", "34", "34A", "34G", "34Z", "133F", "122", "145T",
	"59C", "59T", "59Y", "29C", "29D", "29T",
	"25A", "25G", "26", "27A", "27E", "28T",
	"46", "46C", "46T", "47", "47E", "48T", "40T", "41E", "42T",
}

var ErrNoRoutesResolved = errors.New("routecode: no route query succeeded")

type RouteQuerier interface {
	RouteVehicles(ctx context.Context, routeCode string) ([]*transit.RouteCodeEntry, error)
}

// Mapping is keyed by door number
type Mapping map[string]transit.RouteCodeEntry

type Resolution struct {
	RouteCode string
	RouteName string
	Direction string
	Confident bool
}

type Config struct {
	Routes         []string
	Delay          time.Duration
	RequestTimeout time.Duration
	TTL            time.Duration
}

type Resolver struct {
	querier RouteQuerier
	config  Config
	cache   *snapshot.Cache[Mapping]
}

func NewResolver(querier RouteQuerier, config Config, opts ...snapshot.Option) *Resolver {
	if config.Routes == nil {
		config.Routes = DefaultRoutes
	}
	config.Routes = util.RemoveDuplicateStrings(config.Routes, nil)
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 5 * time.Second
	}
	if config.TTL == 0 {
		config.TTL = 5 * time.Minute
	}

	resolver := &Resolver{
		querier: querier,
		config:  config,
	}

	// A full sweep waits for every request in turn
	sweep := time.Duration(len(config.Routes)) * (config.Delay + config.RequestTimeout)
	opts = append([]snapshot.Option{snapshot.WithTimeout(sweep + time.Minute)}, opts...)

	resolver.cache = snapshot.New("routecode", config.TTL, resolver.refresh, opts...)

	return resolver
}

// refresh polls every configured route and merges what it finds onto the previous mapping
func (r *Resolver) refresh(ctx context.Context, previous Mapping) (Mapping, error) {
	mapping := Mapping{}
	for doorNumber, entry := range previous {
		mapping[doorNumber] = entry
	}

	succeeded := 0
	discovered := 0

	for _, routeCode := range r.config.Routes {
		if r.config.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.config.Delay):
			}
		}

		requestCtx, cancel := context.WithTimeout(ctx, r.config.RequestTimeout)
		entries, err := r.querier.RouteVehicles(requestCtx, routeCode)
		cancel()

		if err != nil {
			log.Debug().Err(err).Str("route", routeCode).Msg("Route code query failed")
			continue
		}

		succeeded++
		for _, entry := range entries {
			if entry.DoorNumber == "" {
				continue
			}

			mapping[entry.DoorNumber] = *entry
			discovered++
		}
	}

	if succeeded == 0 && len(r.config.Routes) > 0 {
		return nil, ErrNoRoutesResolved
	}

	log.Info().Int("discovered", discovered).Int("total", len(mapping)).Int("routes", succeeded).Msg("Route code mapping refreshed")

	return mapping, nil
}

// Warm starts a refresh in the background if the mapping is stale. It never blocks.
func (r *Resolver) Warm() {
	go func() {
		if _, err := r.cache.Get(context.Background()); err != nil {
			log.Debug().Err(err).Msg("Route code warm up failed")
		}
	}()
}

// Refresh waits for a full refresh of the mapping
func (r *Resolver) Refresh(ctx context.Context) (Mapping, error) {
	return r.cache.Refresh(ctx)
}

func (r *Resolver) Cache() *snapshot.Cache[Mapping] {
	return r.cache
}

func (r *Resolver) Len() int {
	mapping, _ := r.cache.Peek()
	return len(mapping)
}

// Resolve looks a door number up in the current mapping. Unknown vehicles fall
// back to their door number with Confident unset.
func (r *Resolver) Resolve(doorNumber string) Resolution {
	mapping, _ := r.cache.Peek()

	if entry, ok := mapping[doorNumber]; ok {
		resolution := Resolution{
			RouteCode: entry.RouteCode,
			RouteName: entry.RouteName,
			Direction: entry.Direction,
			Confident: true,
		}
		if resolution.RouteCode == "" {
			resolution.RouteCode = doorNumber
		}

		return resolution
	}

	return Resolution{
		RouteCode: doorNumber,
	}
}
