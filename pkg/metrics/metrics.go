package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/travigo/busradar/pkg/schedule"
)

// Collector owns a private registry so tests can create as many as they like
type Collector struct {
	reg *prometheus.Registry

	Rebuilds        *prometheus.CounterVec   // cache, result: success|failure
	RebuildDuration *prometheus.HistogramVec // cache
	StaleServes     *prometheus.CounterVec   // cache

	Vehicles       prometheus.Gauge
	ScheduleStops  prometheus.Gauge
	ScheduleRoutes prometheus.Gauge
	ScheduleTrips  prometheus.Gauge
	ResolvedDoors  prometheus.Gauge

	Requests *prometheus.CounterVec // route, status
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busradar_snapshot_rebuilds_total",
			Help: "Snapshot cache rebuilds by outcome.",
		}, []string{"cache", "result"}),
		RebuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "busradar_snapshot_rebuild_duration_seconds",
			Help:    "Time spent rebuilding a snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"cache"}),
		StaleServes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busradar_snapshot_stale_serves_total",
			Help: "Times a stale snapshot was served after a failed rebuild.",
		}, []string{"cache"}),
		Vehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busradar_live_vehicles",
			Help: "Vehicles in the latest live snapshot.",
		}),
		ScheduleStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busradar_schedule_stops",
			Help: "Stops in the latest schedule index.",
		}),
		ScheduleRoutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busradar_schedule_routes",
			Help: "Routes in the latest schedule index.",
		}),
		ScheduleTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busradar_schedule_trips",
			Help: "Trips in the latest schedule index.",
		}),
		ResolvedDoors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busradar_routecode_resolved_vehicles",
			Help: "Door numbers with a known route code.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busradar_api_requests_total",
			Help: "API requests by route and status.",
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		c.Rebuilds, c.RebuildDuration, c.StaleServes,
		c.Vehicles, c.ScheduleStops, c.ScheduleRoutes, c.ScheduleTrips, c.ResolvedDoors,
		c.Requests,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

func (c *Collector) Rebuilt(name string, took time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	c.Rebuilds.WithLabelValues(name, result).Inc()
	c.RebuildDuration.WithLabelValues(name).Observe(took.Seconds())
}

func (c *Collector) ServedStale(name string, age time.Duration) {
	c.StaleServes.WithLabelValues(name).Inc()
}

func (c *Collector) ObserveSchedule(stats schedule.Stats) {
	c.ScheduleStops.Set(float64(stats.Stops))
	c.ScheduleRoutes.Set(float64(stats.Routes))
	c.ScheduleTrips.Set(float64(stats.Trips))
}

func (c *Collector) ObserveVehicles(count int) {
	c.Vehicles.Set(float64(count))
}

func (c *Collector) ObserveResolvedDoors(count int) {
	c.ResolvedDoors.Set(float64(count))
}

func (c *Collector) ObserveRequest(route string, status int) {
	c.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
