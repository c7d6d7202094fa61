package engine

import (
	"github.com/travigo/busradar/pkg/schedule"
)

type RecordsStats struct {
	Network string

	Schedule       *schedule.Stats
	ScheduleAgeSec int64

	Vehicles       int
	VehiclesAgeSec int64

	ResolvedVehicles int
}

// Stats reports what the caches currently hold without triggering any refresh
func (e *Engine) Stats() *RecordsStats {
	stats := &RecordsStats{
		Network:        e.Network.Identifier,
		ScheduleAgeSec: -1,
		VehiclesAgeSec: -1,
	}

	if e.Schedule != nil {
		if index, ok := e.Schedule.Peek(); ok {
			indexStats := index.Stats()
			stats.Schedule = &indexStats
			stats.ScheduleAgeSec = int64(e.Schedule.Age().Seconds())
		}
	}

	if e.Feed != nil {
		if vehicles, ok := e.Feed.Cache().Peek(); ok {
			stats.Vehicles = len(vehicles)
			stats.VehiclesAgeSec = int64(e.Feed.Cache().Age().Seconds())
		}
	}

	if e.RouteCodes != nil {
		stats.ResolvedVehicles = e.RouteCodes.Len()
	}

	return stats
}
