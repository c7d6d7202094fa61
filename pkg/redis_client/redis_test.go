package redis_client

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)

	t.Setenv("BUSRADAR_REDIS_ADDRESS", server.Addr())
	t.Setenv("BUSRADAR_REDIS_DATABASE", "0")

	require.NoError(t, Connect(true))
	t.Cleanup(func() {
		Client.Close()
		Client = nil
	})

	assert.NotNil(t, Client)
}

func TestConnectUnconfigured(t *testing.T) {
	t.Setenv("BUSRADAR_REDIS_ADDRESS", "")

	assert.NoError(t, Connect(false))
	assert.ErrorIs(t, Connect(true), ErrNotConfigured)
}

func TestConnectBadDatabase(t *testing.T) {
	t.Setenv("BUSRADAR_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("BUSRADAR_REDIS_DATABASE", "primary")

	assert.Error(t, Connect(true))
}
