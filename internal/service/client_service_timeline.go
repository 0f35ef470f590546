package service

import (
	"slices"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/models"
)

// TimelineState is the announcement history, newest first.
type TimelineState struct {
	Entries []models.TimelineEntry
	ViewMeta
}

type clientTimelineService struct {
	key       poller.Key
	adapter   adapter.ServerAdapter
	scheduler *poller.Scheduler
	bus       *invalidation.Bus
	logger    *logger.Logger
}

func NewClientTimelineService(serverAdapter adapter.ServerAdapter, sched *poller.Scheduler, bus *invalidation.Bus, log *logger.Logger) ClientTimelineService {
	return &clientTimelineService{
		key:       poller.Key{Endpoint: endpointHistory},
		adapter:   serverAdapter,
		scheduler: sched,
		bus:       bus,
		logger:    log,
	}
}

func (t *clientTimelineService) Watch(fn func(TimelineState)) func() {
	return watchEntity(t.scheduler, t.bus, invalidation.History, t.key, t.adapter.ListHistory, func(snap poller.Snapshot[[]models.TimelineEntry]) {
		st := TimelineState{ViewMeta: metaOf(snap)}
		if snap.HasValue {
			st.Entries = SortTimeline(snap.Value)
		}
		fn(st)
	})
}

func (t *clientTimelineService) Refresh() {
	t.scheduler.Refresh(t.key)
}

// SortTimeline returns a copy of entries ordered by date and time, newest
// first. Entries whose date cannot be parsed go last in their original order.
func SortTimeline(entries []models.TimelineEntry) []models.TimelineEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.TimelineEntry) int {
		at, aok := a.Time()
		bt, bok := b.Time()
		switch {
		case aok && bok:
			return bt.Compare(at)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
	return out
}

// FilterByDate keeps the entries dated on the calendar day of day.
func FilterByDate(entries []models.TimelineEntry, day time.Time) []models.TimelineEntry {
	y, m, d := day.Date()
	out := make([]models.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		at, ok := e.Time()
		if !ok {
			continue
		}
		if ey, em, ed := at.Date(); ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
