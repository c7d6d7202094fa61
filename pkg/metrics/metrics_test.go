package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/busradar/pkg/schedule"
)

func gatherValue(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	families, err := c.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}

	metrics:
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if labels[label.GetName()] != label.GetValue() {
					continue metrics
				}
			}

			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func TestRebuildObserver(t *testing.T) {
	c := NewCollector()

	c.Rebuilt("schedule", time.Second, nil)
	c.Rebuilt("schedule", time.Second, errors.New("boom"))
	c.Rebuilt("schedule", 2*time.Second, nil)
	c.ServedStale("schedule", time.Minute)

	assert.Equal(t, 2.0, gatherValue(t, c, "busradar_snapshot_rebuilds_total", map[string]string{"cache": "schedule", "result": "success"}))
	assert.Equal(t, 1.0, gatherValue(t, c, "busradar_snapshot_rebuilds_total", map[string]string{"cache": "schedule", "result": "failure"}))
	assert.Equal(t, 3.0, gatherValue(t, c, "busradar_snapshot_rebuild_duration_seconds", map[string]string{"cache": "schedule"}))
	assert.Equal(t, 1.0, gatherValue(t, c, "busradar_snapshot_stale_serves_total", map[string]string{"cache": "schedule"}))
}

func TestGauges(t *testing.T) {
	c := NewCollector()

	c.ObserveSchedule(schedule.Stats{Stops: 12, Routes: 3, Trips: 40})
	c.ObserveVehicles(2500)
	c.ObserveResolvedDoors(180)

	assert.Equal(t, 12.0, gatherValue(t, c, "busradar_schedule_stops", nil))
	assert.Equal(t, 3.0, gatherValue(t, c, "busradar_schedule_routes", nil))
	assert.Equal(t, 40.0, gatherValue(t, c, "busradar_schedule_trips", nil))
	assert.Equal(t, 2500.0, gatherValue(t, c, "busradar_live_vehicles", nil))
	assert.Equal(t, 180.0, gatherValue(t, c, "busradar_routecode_resolved_vehicles", nil))
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.ObserveVehicles(7)

	recorder := httptest.NewRecorder()
	c.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(recorder.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "busradar_live_vehicles 7")
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveRequest("/api/arrivals/:stopId", 200)
	c.ObserveRequest("/api/arrivals/:stopId", 200)
	c.ObserveRequest("/api/arrivals/:stopId", 503)

	assert.Equal(t, 2.0, gatherValue(t, c, "busradar_api_requests_total", map[string]string{"route": "/api/arrivals/:stopId", "status": "200"}))
	assert.Equal(t, 1.0, gatherValue(t, c, "busradar_api_requests_total", map[string]string{"route": "/api/arrivals/:stopId", "status": "503"}))
}
