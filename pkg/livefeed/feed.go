package livefeed

import (
	"context"
	"time"

	"github.com/travigo/busradar/pkg/snapshot"
	"github.com/travigo/busradar/pkg/transit"
)

// Feed is the cached view of the fleet positions
type Feed struct {
	client *Client
	cache  *snapshot.Cache[[]*transit.Vehicle]
}

func NewFeed(client *Client, ttl time.Duration, opts ...snapshot.Option) *Feed {
	feed := &Feed{client: client}

	feed.cache = snapshot.New("livefeed", ttl, func(ctx context.Context, _ []*transit.Vehicle) ([]*transit.Vehicle, error) {
		return client.Vehicles(ctx)
	}, opts...)

	return feed
}

// Snapshot returns the latest vehicle positions, stale ones if the last refresh failed
func (f *Feed) Snapshot(ctx context.Context) ([]*transit.Vehicle, error) {
	return f.cache.Get(ctx)
}

func (f *Feed) Client() *Client {
	return f.client
}

func (f *Feed) Cache() *snapshot.Cache[[]*transit.Vehicle] {
	return f.cache
}
