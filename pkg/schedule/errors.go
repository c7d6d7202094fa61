package schedule

import "errors"

var (
	ErrFetch         = errors.New("schedule: failed to fetch dataset")
	ErrParse         = errors.New("schedule: failed to parse dataset")
	ErrRouteNotFound = errors.New("schedule: route not found")
	ErrStopNotFound  = errors.New("schedule: stop not found")
)
