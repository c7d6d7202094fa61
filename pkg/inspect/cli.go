// Package inspect prints engine answers on the command line for debugging a network profile
package inspect

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/kr/pretty"
	"github.com/travigo/busradar/pkg/dataaggregator"
	"github.com/travigo/busradar/pkg/dataaggregator/query"
	"github.com/travigo/busradar/pkg/engine"
	"github.com/travigo/busradar/pkg/network"
	"github.com/travigo/busradar/pkg/transit"
	"github.com/urfave/cli/v2"
)

const lookupTimeout = 3 * time.Minute

func RegisterCLI() *cli.Command {
	networkFlag := &cli.StringFlag{
		Name:  "network",
		Usage: "network profile yaml merged onto the built in one",
	}

	return &cli.Command{
		Name:  "inspect",
		Usage: "Query the engine without starting the web API",
		Subcommands: []*cli.Command{
			{
				Name:  "network",
				Usage: "print the effective network profile",
				Flags: []cli.Flag{networkFlag},
				Action: func(c *cli.Context) error {
					net, err := network.Load(c.String("network"))
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "%# v\n", pretty.Formatter(net))
					return nil
				},
			},
			{
				Name:      "route-shape",
				Usage:     "print the ordered stops of a route",
				ArgsUsage: "<route id or short name>",
				Flags:     []cli.Flag{networkFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("route-shape needs exactly one route identifier", 1)
					}

					return lookup[*transit.RouteShape](c, query.RouteShape{Identifier: c.Args().First()})
				},
			},
			{
				Name:  "arrivals",
				Usage: "print the live arrival board for a point",
				Flags: []cli.Flag{
					networkFlag,
					&cli.StringFlag{Name: "stop", Usage: "stop id used for the stop routes"},
					&cli.Float64Flag{Name: "lat", Required: true},
					&cli.Float64Flag{Name: "lng", Required: true},
				},
				Action: func(c *cli.Context) error {
					return lookup[*transit.ArrivalBoard](c, query.Arrivals{
						StopID: c.String("stop"),
						Point:  transit.NewPoint(c.Float64("lat"), c.Float64("lng")),
					})
				},
			},
			{
				Name:  "stops",
				Usage: "print the stops around a point",
				Flags: []cli.Flag{
					networkFlag,
					&cli.Float64Flag{Name: "lat", Required: true},
					&cli.Float64Flag{Name: "lng", Required: true},
					&cli.Float64Flag{Name: "radius", Value: 500},
				},
				Action: func(c *cli.Context) error {
					return lookup[[]transit.NearbyStop](c, query.StopsNearby{
						Latitude:  c.Float64("lat"),
						Longitude: c.Float64("lng"),
						Radius:    c.Float64("radius"),
					})
				},
			},
		},
	}
}

func lookup[T any](c *cli.Context, q any) error {
	e, err := engine.Load(c.String("network"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, lookupTimeout)
	defer cancel()

	result, err := dataaggregator.Lookup[T](ctx, e.Aggregator, q)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%# v\n", pretty.Formatter(result))
	return nil
}
