package elastic_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type RefreshEvent struct {
	Timestamp time.Time

	Cache string
	Event string

	Success    bool
	FailReason string

	DurationMS int64
	StaleAgeMS int64
}

func RefreshEventsIndexName(timestamp time.Time) string {
	return fmt.Sprintf("busradar-refresh-events-%d-%02d", timestamp.Year(), timestamp.Month())
}

// EventSink records snapshot rebuilds and stale serves when Elasticsearch is connected
type EventSink struct {
	now func() time.Time
}

func NewEventSink() *EventSink {
	return &EventSink{now: time.Now}
}

func (s *EventSink) Rebuilt(name string, took time.Duration, err error) {
	event := RefreshEvent{
		Timestamp:  s.now(),
		Cache:      name,
		Event:      "rebuild",
		Success:    err == nil,
		DurationMS: took.Milliseconds(),
	}
	if err != nil {
		event.FailReason = err.Error()
	}

	s.index(event)
}

func (s *EventSink) ServedStale(name string, age time.Duration) {
	s.index(RefreshEvent{
		Timestamp:  s.now(),
		Cache:      name,
		Event:      "stale",
		Success:    false,
		StaleAgeMS: age.Milliseconds(),
	})
}

func (s *EventSink) index(event RefreshEvent) {
	if Client == nil {
		return
	}

	document, _ := json.Marshal(event)
	IndexRequest(RefreshEventsIndexName(event.Timestamp), bytes.NewReader(document))
}
