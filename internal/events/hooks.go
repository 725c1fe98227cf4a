// Package events implements the synchronous, ordered hook bus wrapped
// around the resolution pipeline. Subscribers are notification callbacks,
// not queries: the pre-filter hook may mutate the candidate set, the
// post-filter hook observes the final one.
package events

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/filters"
)

// HookType identifies a notification point in the resolution pipeline.
type HookType string

const (
	// HookPreFilter fires with the raw candidate set before the predicate
	// pass; subscribers may add or remove candidates.
	HookPreFilter HookType = "preFilterBonuses"

	// HookPostFilter fires with the final surviving set.
	HookPostFilter HookType = "postFilterBonuses"
)

// FilterPayload is what hook subscribers receive. Bonuses points at the
// live candidate slice so pre-filter subscribers can mutate it in place.
type FilterPayload struct {
	Context *filters.Context
	Bonuses *[]*bonus.Bonus
}

// Subscriber processes one hook notification.
type Subscriber struct {
	// ID identifies the subscriber for unsubscription.
	ID string
	// Priority orders invocation; lower runs first.
	Priority int
	Handle   func(payload *FilterPayload)
}

// Bus manages hook distribution. Safe for concurrent subscription, though
// emission itself is synchronous per roll.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[HookType][]Subscriber
	logger      *zap.Logger
}

// NewBus creates a hook bus.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subscribers: make(map[HookType][]Subscriber),
		logger:      logger,
	}
}

// Subscribe adds a subscriber for the hook and keeps the list sorted by
// priority.
func (b *Bus) Subscribe(hook HookType, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[hook] = append(b.subscribers[hook], sub)
	sort.SliceStable(b.subscribers[hook], func(i, j int) bool {
		return b.subscribers[hook][i].Priority < b.subscribers[hook][j].Priority
	})

	b.logger.Debug("hook subscribed",
		zap.String("hook", string(hook)),
		zap.String("subscriber", sub.ID),
		zap.Int("priority", sub.Priority))
}

// Unsubscribe removes the subscriber with the given id.
func (b *Bus) Unsubscribe(hook HookType, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[hook]
	for i, s := range subs {
		if s.ID != id {
			continue
		}
		b.subscribers[hook] = append(subs[:i], subs[i+1:]...)
		b.logger.Debug("hook unsubscribed",
			zap.String("hook", string(hook)),
			zap.String("subscriber", id))
		return
	}
}

// Emit notifies every subscriber in priority order. Subscribers run
// synchronously on the caller's goroutine.
func (b *Bus) Emit(hook HookType, payload *FilterPayload) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers[hook]))
	copy(subs, b.subscribers[hook])
	b.mu.RUnlock()

	for _, s := range subs {
		s.Handle(payload)
	}
}
