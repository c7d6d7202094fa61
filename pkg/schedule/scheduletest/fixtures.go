// Package scheduletest provides a small Kadıköy schedule for tests of packages built on the index.
package scheduletest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/tabular"
)

const (
	Stops = "stop_id,stop_name,stop_desc,stop_lat,stop_lon\n" +
		"S1,Kadıköy,direction: Üsküdar,40.9923,29.0244\n" +
		"S2,Altıyol,,40.9870,29.0290\n" +
		"S3,Moda,,40.9810,29.0260\n" +
		"S4,Söğütlüçeşme,,40.9930,29.0370\n"

	Routes = "route_id,route_short_name,route_long_name,route_color\n" +
		"R1,500T,Tuzla - Cevizlibağ,\n" +
		"R2,34,Avcılar - Söğütlüçeşme,e74c3c\n"

	Trips = "route_id,trip_id,trip_headsign,direction_id\n" +
		"R1,T1,Tuzla,0\n" +
		"R1,T2,Cevizlibağ,1\n" +
		"R2,T3,Söğütlüçeşme,0\n"

	StopTimes = "trip_id,stop_id,arrival_time,stop_sequence\n" +
		"T1,S1,08:00:00,1\n" +
		"T1,S2,08:05:00,2\n" +
		"T1,S3,08:10:00,3\n" +
		"T2,S3,09:00:00,1\n" +
		"T2,S1,09:10:00,2\n" +
		"T3,S4,10:00:00,1\n" +
		"T3,S1,10:10:00,2\n"
)

func Tables(t testing.TB) schedule.Tables {
	decode := func(text string) *tabular.Table {
		table, err := tabular.Decode(text, ',')
		require.NoError(t, err)
		return table
	}

	return schedule.Tables{
		Stops:     decode(Stops),
		Routes:    decode(Routes),
		Trips:     decode(Trips),
		StopTimes: decode(StopTimes),
	}
}

func Index(t testing.TB) *schedule.Index {
	index, err := schedule.Build(Tables(t))
	require.NoError(t, err)

	return index
}

// Static is a schedule provider that always returns the same index or error
type Static struct {
	Index *schedule.Index
	Err   error
}

func (s Static) Get(ctx context.Context) (*schedule.Index, error) {
	return s.Index, s.Err
}
