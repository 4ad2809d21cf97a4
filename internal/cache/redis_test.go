package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("skipping Redis integration tests: %v", err)
	}
	require.NoError(t, client.FlushDB(ctx).Err())

	c := NewRedisCacheWithClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSeatLockKey(t *testing.T) {
	assert.Equal(t, "lock:flight:7:row:12:seat:3", seatLockKey(7, 12, 3))
}

func TestRedisCache_Flights(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	got, err := c.GetFlights(ctx, "page=1")
	require.NoError(t, err)
	assert.Nil(t, got)

	list := domain.FlightList{Flights: []domain.Flight{{ID: 1, FlightNumber: "PS101"}}, Total: 1}
	require.NoError(t, c.SetFlights(ctx, "page=1", list))

	got, err = c.GetFlights(ctx, "page=1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "PS101", got.Flights[0].FlightNumber)

	require.NoError(t, c.InvalidateFlights(ctx))

	got, err = c.GetFlights(ctx, "page=1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_SeatLock(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	ok, err := c.AcquireSeatLock(ctx, 1, 5, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.AcquireSeatLock(ctx, 1, 5, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.AcquireSeatLock(ctx, 2, 5, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.ReleaseSeatLock(ctx, 1, 5, 3))

	ok, err = c.AcquireSeatLock(ctx, 1, 5, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
