package pagebloc

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Default configuration values. There is no process-wide mutable
// configuration; every Bloc carries its own copy, customized through
// Options at construction.
const (
	// DefaultPageSize is the number of items requested per fetch when
	// WithPageSize is not given.
	DefaultPageSize = 10

	// DefaultMailboxSize is the event queue capacity. Dispatch blocks once
	// the mailbox is full, preserving FIFO order.
	DefaultMailboxSize = 32

	// DefaultSubscriberBuffer is the per-subscriber channel capacity. A
	// subscriber that falls further behind than this misses intermediate
	// snapshots (the current one is always available via State).
	DefaultSubscriberBuffer = 16
)

// Option configures a Bloc at construction.
type Option[T any] func(*config[T])

// config holds per-instance Bloc configuration.
type config[T any] struct {
	pageSize         int
	filters          map[string]any
	mailboxSize      int
	subscriberBuffer int
	equals           EqualsFunc[T]
	logger           zerolog.Logger
	metrics          *Metrics
}

func defaultConfig[T any]() config[T] {
	return config[T]{
		pageSize:         DefaultPageSize,
		mailboxSize:      DefaultMailboxSize,
		subscriberBuffer: DefaultSubscriberBuffer,
		equals: func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		},
		logger: zerolog.Nop(),
	}
}

// WithPageSize sets the number of items requested per fetch.
// Non-positive values are ignored.
func WithPageSize[T any](size int) Option[T] {
	return func(c *config[T]) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithFilters sets a static filter mapping passed verbatim to every
// repository fetch. The map is copied, so later mutation by the caller
// does not leak into in-flight fetches.
func WithFilters[T any](filters map[string]any) Option[T] {
	return func(c *config[T]) {
		if len(filters) == 0 {
			return
		}
		copied := make(map[string]any, len(filters))
		for k, v := range filters {
			copied[k] = v
		}
		c.filters = copied
	}
}

// WithMailboxSize sets the event queue capacity.
// Non-positive values are ignored.
func WithMailboxSize[T any](size int) Option[T] {
	return func(c *config[T]) {
		if size > 0 {
			c.mailboxSize = size
		}
	}
}

// WithEquals replaces the fallback value-equality used by UpdateItem and
// RemoveItem events. Useful when T contains fields that should not
// participate in identity (timestamps, cache tags).
func WithEquals[T any](equals EqualsFunc[T]) Option[T] {
	return func(c *config[T]) {
		if equals != nil {
			c.equals = equals
		}
	}
}

// WithLogger attaches a zerolog logger. The Bloc logs transitions at debug
// level and fetch failures at warn level, tagged with its instance id.
// The default logger discards everything.
func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(c *config[T]) {
		c.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors. The default is nil, which
// disables instrumentation.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(c *config[T]) {
		c.metrics = m
	}
}
