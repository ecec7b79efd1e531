// Package bus is the synchronous suspicion event channel shared by every
// agent in a simulation.
package bus

import (
	"github.com/felixgeelhaar/bolt/v3"

	"github.com/automoto/kradylechka/config"
	"github.com/automoto/kradylechka/logging"
)

// Handler receives published events. Handlers may publish in turn.
type Handler func(Event)

// Subscription identifies a handler for Unsubscribe.
type Subscription uint64

type subscriber struct {
	id      Subscription
	fn      Handler
	removed bool
}

// Bus delivers each event to every subscriber in subscription order. It does
// no filtering. Not safe for concurrent use.
type Bus struct {
	subs     []*subscriber
	nextID   Subscription
	depth    int
	maxDepth int
	dropped  int
	logger   *bolt.Logger
}

type Option func(*Bus)

// WithMaxDepth bounds nested Publish calls made from handlers.
func WithMaxDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

func WithLogger(l *bolt.Logger) Option {
	return func(b *Bus) {
		b.logger = l
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{maxDepth: config.Bus.MaxDepth}
	if b.maxDepth <= 0 {
		b.maxDepth = 8
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) Subscribe(fn Handler) Subscription {
	b.nextID++
	b.subs = append(b.subs, &subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored. A handler
// removed during dispatch gets no further events, including the current one.
func (b *Bus) Unsubscribe(id Subscription) {
	for i, s := range b.subs {
		if s.id == id {
			s.removed = true
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e synchronously. Publishing from a handler nests; past the
// depth limit the event is dropped.
func (b *Bus) Publish(e Event) {
	if b.depth >= b.maxDepth {
		b.dropped++
		if b.logger != nil {
			logging.NewEvent(b.logger.Warn()).Add(
				logging.Category(e.Category.String()),
				logging.Depth(b.depth),
				logging.Str("source", e.Source),
			).Msg("suspicion event dropped")
		}
		return
	}

	b.depth++
	defer func() { b.depth-- }()

	// Subscribers added during dispatch wait for the next event
	snapshot := make([]*subscriber, len(b.subs))
	copy(snapshot, b.subs)
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.fn(e)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	return len(b.subs)
}

// Dropped returns how many events the depth limit discarded.
func (b *Bus) Dropped() int {
	return b.dropped
}
