package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// FetchFunc builds a fresh value. The previously cached value (or the zero value)
// is passed in so incremental caches can merge onto it.
type FetchFunc[T any] func(ctx context.Context, previous T) (T, error)

// Observer is notified about rebuilds and stale serves
type Observer interface {
	Rebuilt(name string, took time.Duration, err error)
	ServedStale(name string, age time.Duration)
}

type options struct {
	timeout   time.Duration
	now       func() time.Time
	observers []Observer
}

type Option func(*options)

// WithTimeout bounds every rebuild
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observers = append(o.observers, observer)
		}
	}
}

// Cache holds a single wholesale-replaced value with an age based expiry.
// Concurrent callers that find it expired share one in-flight rebuild.
type Cache[T any] struct {
	name  string
	ttl   time.Duration
	fetch FetchFunc[T]
	options

	mutex     sync.RWMutex
	value     T
	hasValue  bool
	updatedAt time.Time

	group singleflight.Group
}

func New[T any](name string, ttl time.Duration, fetch FetchFunc[T], opts ...Option) *Cache[T] {
	o := options{
		timeout: time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[T]{
		name:    name,
		ttl:     ttl,
		fetch:   fetch,
		options: o,
	}
}

func (c *Cache[T]) Name() string {
	return c.name
}

// Get returns the cached value while it is younger than the TTL, otherwise it
// waits for a rebuild. A failed rebuild falls back to the previous value.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	if value, ok := c.fresh(); ok {
		return value, nil
	}

	return c.await(ctx, func() (T, error) {
		if value, ok := c.fresh(); ok {
			return value, nil
		}

		return c.rebuild()
	})
}

// Refresh forces a rebuild regardless of the value's age
func (c *Cache[T]) Refresh(ctx context.Context) (T, error) {
	return c.await(ctx, c.rebuild)
}

// Peek returns the current value without ever triggering a rebuild
func (c *Cache[T]) Peek() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.value, c.hasValue
}

func (c *Cache[T]) Age() time.Duration {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.hasValue {
		return 0
	}

	return c.now().Sub(c.updatedAt)
}

func (c *Cache[T]) fresh() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.hasValue && c.now().Sub(c.updatedAt) < c.ttl {
		return c.value, true
	}

	var empty T
	return empty, false
}

func (c *Cache[T]) await(ctx context.Context, build func() (T, error)) (T, error) {
	result := c.group.DoChan(c.name, func() (interface{}, error) {
		return build()
	})

	select {
	case res := <-result:
		if res.Err != nil {
			var empty T
			return empty, res.Err
		}

		return res.Val.(T), nil
	case <-ctx.Done():
		// The rebuild carries on in the background for whoever comes next
		if value, ok := c.Peek(); ok {
			return value, nil
		}

		var empty T
		return empty, ctx.Err()
	}
}

func (c *Cache[T]) rebuild() (T, error) {
	previous, hasPrevious := c.Peek()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	startTime := c.now()
	value, err := c.fetch(ctx, previous)
	took := c.now().Sub(startTime)

	for _, observer := range c.observers {
		observer.Rebuilt(c.name, took, err)
	}

	if err != nil {
		if hasPrevious {
			age := c.Age()

			log.Warn().Err(err).Str("cache", c.name).Str("age", age.String()).Msg("Rebuild failed, serving stale snapshot")

			for _, observer := range c.observers {
				observer.ServedStale(c.name, age)
			}

			return previous, nil
		}

		log.Error().Err(err).Str("cache", c.name).Msg("Rebuild failed with no snapshot to fall back on")

		var empty T
		return empty, err
	}

	c.mutex.Lock()
	c.value = value
	c.hasValue = true
	c.updatedAt = c.now()
	c.mutex.Unlock()

	log.Debug().Str("cache", c.name).Str("took", took.String()).Msg("Snapshot rebuilt")

	return value, nil
}
