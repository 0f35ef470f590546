// Package invalidation carries "something changed" signals between the
// console's views.
//
// A mutation publishes the entity type it touched. Every view subscribed to
// that entity re-fetches its data in full. Signals carry no payload and no
// ordering between subscribers is implied.
package invalidation

import (
	"sync"

	"github.com/MKhiriev/airguard-admin/internal/logger"
)

// Entity is the type of remote data a signal refers to.
type Entity string

const (
	Users    Entity = "users"
	Readings Entity = "readings"
	Chat     Entity = "chat"
	History  Entity = "history"
)

// Bus is a synchronous publish/subscribe hub keyed by [Entity].
type Bus struct {
	logger *logger.Logger

	mu       sync.RWMutex
	nextID   uint64
	subs     map[Entity]map[uint64]func()
	versions map[Entity]uint64
}

// NewBus returns an empty bus.
func NewBus(log *logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{
		logger:   log,
		subs:     make(map[Entity]map[uint64]func()),
		versions: make(map[Entity]uint64),
	}
}

// Subscribe registers fn for entity and returns a function that removes it.
func (b *Bus) Subscribe(entity Entity, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[entity] == nil {
		b.subs[entity] = make(map[uint64]func())
	}
	b.subs[entity][id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[entity], id)
	}
}

// Publish bumps the version of entity and calls every subscriber of entity
// exactly once before returning. It returns the new version.
func (b *Bus) Publish(entity Entity) uint64 {
	b.mu.Lock()
	b.versions[entity]++
	version := b.versions[entity]
	fns := make([]func(), 0, len(b.subs[entity]))
	for _, fn := range b.subs[entity] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	b.logger.Debug().
		Str("entity", string(entity)).
		Uint64("version", version).
		Int("subscribers", len(fns)).
		Msg("invalidation published")

	for _, fn := range fns {
		fn()
	}
	return version
}

// Version returns how many times entity has been published.
func (b *Bus) Version(entity Entity) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.versions[entity]
}

// Subscribers returns the number of subscribers of entity.
func (b *Bus) Subscribers(entity Entity) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[entity])
}
