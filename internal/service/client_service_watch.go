package service

import (
	"time"

	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/poller"
)

// Remote endpoints polled by the console. They double as scheduler keys so
// views that read the same endpoint at the same interval share one loop.
const (
	endpointUsers    = "/users"
	endpointReadings = "/aqReadings/"
	endpointChart    = "/aqChart"
	endpointChat     = "/chat"
	endpointHistory  = "/history"
)

// ViewMeta is the polling status every view state carries.
type ViewMeta struct {
	// Loading is true until the first fetch completes.
	Loading bool
	// Err is the error of the last fetch; the data shown is then stale.
	Err error
	// UpdatedAt is when the data was last fetched successfully.
	UpdatedAt time.Time
}

// Stale reports whether the last fetch failed.
func (m ViewMeta) Stale() bool {
	return m.Err != nil && !m.UpdatedAt.IsZero()
}

func metaOf[T any](snap poller.Snapshot[T]) ViewMeta {
	return ViewMeta{Loading: snap.Loading, Err: snap.Err, UpdatedAt: snap.UpdatedAt}
}

// watchEntity watches key and re-fetches it whenever entity is invalidated.
func watchEntity[T any](
	sched *poller.Scheduler,
	bus *invalidation.Bus,
	entity invalidation.Entity,
	key poller.Key,
	fetch poller.FetchFunc[T],
	fn func(poller.Snapshot[T]),
) (unsubscribe func()) {
	stopPoll := poller.Watch(sched, key, fetch, fn)
	stopBus := bus.Subscribe(entity, func() { sched.Refresh(key) })

	return func() {
		stopBus()
		stopPoll()
	}
}
