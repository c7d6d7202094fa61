package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/travigo/busradar/pkg/api/routes"
	"github.com/travigo/busradar/pkg/engine"
	"github.com/travigo/busradar/pkg/transit"
)

func NewApp(e *engine.Engine) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger(e.Metrics))

	webApp.Get("/metrics", adaptor.HTTPHandler(e.Metrics.Handler()))

	group := webApp.Group("/api")

	group.Get("version", routes.APIVersion(e.Network.Identifier))
	group.Get("stats", routes.Stats(e))

	defaultPoint := transit.NewPoint(e.Network.Arrivals.DefaultPoint.Lat, e.Network.Arrivals.DefaultPoint.Lng)

	routes.StopsRouter(group.Group("/stops"), e.Aggregator)
	routes.ArrivalsRouter(group.Group("/arrivals"), e.Aggregator, defaultPoint)
	routes.RouteShapeRouter(group.Group("/route-shape"), e.Aggregator)
	routes.DirectionsRouter(group.Group("/directions"), e.Aggregator)

	group.Get("vehicles.pb", routes.VehiclePositions(e.Aggregator))

	return webApp
}

func SetupServer(listen string, e *engine.Engine) error {
	return NewApp(e).Listen(listen)
}
