package source

import (
	"context"
	"errors"

	"github.com/travigo/busradar/pkg/schedule"
	"github.com/travigo/busradar/pkg/transit"
)

var UnsupportedSourceError = errors.New("unsupported source for lookup")

var ErrScheduleUnavailable = errors.New("schedule data unavailable")

type Schedule interface {
	Get(ctx context.Context) (*schedule.Index, error)
}

type Vehicles interface {
	Snapshot(ctx context.Context) ([]*transit.Vehicle, error)
}
