package cachedresults

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string
	Count int
}

func TestCacheRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	c := New(client, time.Minute)
	require.NotNil(t, c)

	ctx := context.Background()

	var missing cachedValue
	assert.False(t, c.Get(ctx, "cachedresults/test/missing", &missing))

	c.Set(ctx, "cachedresults/test/a", cachedValue{Name: "500T", Count: 3})

	var found cachedValue
	require.True(t, c.Get(ctx, "cachedresults/test/a", &found))
	assert.Equal(t, cachedValue{Name: "500T", Count: 3}, found)

	assert.True(t, server.Exists("cachedresults/test/a"))

	server.Del("cachedresults/test/a")
	assert.False(t, c.Get(ctx, "cachedresults/test/a", &found))
}

func TestCacheExpiry(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	c := New(client, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "cachedresults/test/expiring", cachedValue{Name: "34"})
	server.FastForward(2 * time.Minute)

	var found cachedValue
	assert.False(t, c.Get(ctx, "cachedresults/test/expiring", &found))
}

func TestNilCache(t *testing.T) {
	c := New(nil, time.Minute)
	assert.Nil(t, c)

	var found cachedValue
	assert.NotPanics(t, func() {
		c.Set(context.Background(), "key", cachedValue{})
	})
	assert.False(t, c.Get(context.Background(), "key", &found))
}
