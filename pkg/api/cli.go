package api

import (
	_ "time/tzdata"

	"github.com/travigo/busradar/pkg/elastic_client"
	"github.com/travigo/busradar/pkg/engine"
	"github.com/travigo/busradar/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the bus radar web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":3001",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "network",
						Usage: "network profile yaml merged onto the built in one",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(false); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					defer elastic_client.WaitUntilQueueEmpty()

					e, err := engine.Load(c.String("network"))
					if err != nil {
						return err
					}

					e.Warm()

					return SetupServer(c.String("listen"), e)
				},
			},
		},
	}
}
