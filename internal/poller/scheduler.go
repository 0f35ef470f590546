package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"golang.org/x/sync/singleflight"
)

// Key identifies a shared polling loop. Two watches with equal keys share
// one fetcher; the fetch function of the first watcher is used.
type Key struct {
	Endpoint string
	Interval time.Duration
}

func (k Key) String() string {
	if k.Interval <= 0 {
		return k.Endpoint + "@on-demand"
	}
	return fmt.Sprintf("%s@%s", k.Endpoint, k.Interval)
}

type entry struct {
	key     Key
	fetcher *Fetcher[any]
	subs    map[uint64]func(Snapshot[any])
	last    *Snapshot[any]
}

// Scheduler owns every polling loop of the console. It reference counts
// watchers per [Key] and collapses concurrent requests for the same endpoint
// into a single call.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
	group  singleflight.Group

	mu      sync.Mutex
	entries map[Key]*entry
	nextID  uint64
	closed  bool
}

// NewScheduler returns a scheduler whose loops live at most as long as ctx.
func NewScheduler(ctx context.Context, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		ctx:     ctx,
		cancel:  cancel,
		logger:  log,
		entries: make(map[Key]*entry),
	}
}

// Watch subscribes fn to the loop identified by key, starting it if this is
// the first watcher. A late joiner immediately receives the latest snapshot.
// The returned function unsubscribes; the loop stops when its last watcher
// leaves. fn runs on a poller goroutine and must not unsubscribe itself
// synchronously.
func Watch[T any](s *Scheduler, key Key, fetch FetchFunc[T], fn func(Snapshot[T])) (unsubscribe func()) {
	return s.subscribe(key, erase(fetch), func(snap Snapshot[any]) {
		fn(typed[T](snap))
	})
}

func (s *Scheduler) subscribe(key Key, fetch FetchFunc[any], fn func(Snapshot[any])) func() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}

	e, ok := s.entries[key]
	if !ok {
		e = &entry{key: key, subs: make(map[uint64]func(Snapshot[any]))}
		e.fetcher = NewFetcher(key.String(), key.Interval, s.dedup(key, fetch), func(snap Snapshot[any]) {
			s.dispatch(e, snap)
		}, s.logger)
		s.entries[key] = e
	}

	s.nextID++
	id := s.nextID
	e.subs[id] = fn
	var last *Snapshot[any]
	if e.last != nil {
		cp := *e.last
		last = &cp
	}
	if !ok {
		// Start only spawns the loop; callbacks never run under s.mu.
		e.fetcher.Start(s.ctx)
		s.logger.Debug().Str("key", key.String()).Msg("polling loop started")
	}
	s.mu.Unlock()

	if last != nil {
		fn(*last)
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(e, id) })
	}
}

func (s *Scheduler) unsubscribe(e *entry, id uint64) {
	s.mu.Lock()
	delete(e.subs, id)
	stop := len(e.subs) == 0 && s.entries[e.key] == e
	if stop {
		delete(s.entries, e.key)
	}
	s.mu.Unlock()

	if stop {
		e.fetcher.Stop()
		s.logger.Debug().Str("key", e.key.String()).Msg("polling loop stopped")
	}
}

func (s *Scheduler) dispatch(e *entry, snap Snapshot[any]) {
	s.mu.Lock()
	if s.entries[e.key] != e {
		s.mu.Unlock()
		return
	}
	e.last = &snap
	subs := make([]func(Snapshot[any]), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// dedup shares one in-flight request per endpoint across every loop that
// polls it, whatever their intervals. The shared call runs on the
// scheduler's context, so stopping the loop that started it does not fail
// the loops that joined it.
func (s *Scheduler) dedup(key Key, fetch FetchFunc[any]) FetchFunc[any] {
	return func(ctx context.Context) (any, error) {
		ch := s.group.DoChan(key.Endpoint, func() (any, error) {
			return fetch(s.ctx)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			return res.Val, res.Err
		}
	}
}

// Refresh asks the loop for key to fetch now. A request already in flight
// for the endpoint is not joined: it may predate the change being refreshed.
// No-op for unknown keys.
func (s *Scheduler) Refresh(key Key) {
	s.mu.Lock()
	e := s.entries[key]
	s.mu.Unlock()

	if e != nil {
		s.group.Forget(key.Endpoint)
		e.fetcher.Refresh()
	}
}

// RefreshEndpoint refreshes every loop polling endpoint.
func (s *Scheduler) RefreshEndpoint(endpoint string) {
	s.mu.Lock()
	targets := make([]*entry, 0, 1)
	for k, e := range s.entries {
		if k.Endpoint == endpoint {
			targets = append(targets, e)
		}
	}
	s.mu.Unlock()

	if len(targets) == 0 {
		return
	}
	s.group.Forget(endpoint)
	for _, e := range targets {
		e.fetcher.Refresh()
	}
}

// Watchers returns the number of subscribers of key.
func (s *Scheduler) Watchers(key Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return len(e.subs)
	}
	return 0
}

// Active returns the number of running loops.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops every loop. Later Watch calls are no-ops.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	entries := s.entries
	s.entries = make(map[Key]*entry)
	s.mu.Unlock()

	s.cancel()
	for _, e := range entries {
		e.fetcher.Stop()
	}
}

func erase[T any](fetch FetchFunc[T]) FetchFunc[any] {
	return func(ctx context.Context) (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func typed[T any](snap Snapshot[any]) Snapshot[T] {
	out := Snapshot[T]{
		HasValue:  snap.HasValue,
		Loading:   snap.Loading,
		Err:       snap.Err,
		UpdatedAt: snap.UpdatedAt,
		Seq:       snap.Seq,
	}
	if v, ok := snap.Value.(T); ok {
		out.Value = v
	} else if snap.HasValue && snap.Value != nil {
		out.HasValue = false
	}
	return out
}
