package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
)

// Fetcher polls one resource. The zero value is not usable; construct it
// with NewFetcher.
type Fetcher[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	onUpdate func(Snapshot[T])
	logger   *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	snap    Snapshot[T]
	live    bool
	cancel  context.CancelFunc
	refresh chan struct{}
	wg      sync.WaitGroup

	emitMu   sync.Mutex
	inFlight atomic.Bool
	pending  atomic.Bool
	skipped  atomic.Int64
}

// NewFetcher returns an idle fetcher. interval <= 0 makes it on-demand: it
// fetches once on Start and then only on Refresh. onUpdate, when non-nil, is
// called after every completed fetch while the fetcher is running; calls are
// serialised.
func NewFetcher[T any](name string, interval time.Duration, fetch FetchFunc[T], onUpdate func(Snapshot[T]), log *logger.Logger) *Fetcher[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		logger:   log,
		now:      time.Now,
		snap:     Snapshot[T]{Loading: true},
	}
}

// Start stops a previous run, then fetches immediately and keeps fetching
// every interval until ctx is cancelled or Stop is called. The last
// snapshot survives a restart.
func (f *Fetcher[T]) Start(ctx context.Context) {
	f.Stop()

	f.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.live = true
	f.refresh = make(chan struct{}, 1)
	refresh := f.refresh
	f.pending.Store(false)
	f.wg.Add(1)
	f.mu.Unlock()

	go f.loop(jobCtx, refresh)
}

// Stop cancels the timer and any in-flight fetch and blocks until every
// goroutine of the fetcher has exited. No snapshot is published after Stop
// returns. Safe to call on an idle fetcher and more than once.
func (f *Fetcher[T]) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.live = false
	f.refresh = nil
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	f.wg.Wait()
}

// Refresh requests an out-of-band fetch. It does not block. Requests made
// while a fetch is in flight collapse into one fetch that starts after it
// completes, so the result always reflects state newer than the request.
// No-op on a stopped fetcher.
func (f *Fetcher[T]) Refresh() {
	f.mu.Lock()
	refresh := f.refresh
	f.mu.Unlock()

	if refresh == nil {
		return
	}
	select {
	case refresh <- struct{}{}:
	default:
	}
}

// Snapshot returns the current state.
func (f *Fetcher[T]) Snapshot() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// Running reports whether the fetcher is started.
func (f *Fetcher[T]) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

// Skipped returns how many ticks were dropped because a fetch was still in
// flight. Deferred refreshes are not counted.
func (f *Fetcher[T]) Skipped() int64 {
	return f.skipped.Load()
}

func (f *Fetcher[T]) loop(ctx context.Context, refresh <-chan struct{}) {
	defer f.wg.Done()

	f.trigger(ctx, false)

	var tick <-chan time.Time
	if f.interval > 0 {
		t := time.NewTicker(f.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			f.trigger(ctx, false)
		case <-refresh:
			f.trigger(ctx, true)
		}
	}
}

// trigger starts a fetch unless one is already running. A tick that finds a
// fetch in flight is dropped; an explicit refresh is deferred until the
// running fetch completes.
func (f *Fetcher[T]) trigger(ctx context.Context, explicit bool) {
	if f.inFlight.CompareAndSwap(false, true) {
		f.run(ctx)
		return
	}
	if !explicit {
		f.skipped.Add(1)
		f.logger.Debug().Str("poller", f.name).Msg("previous fetch still in flight, tick skipped")
		return
	}

	f.pending.Store(true)
	// the running fetch may have finished before it could see the flag
	if f.inFlight.CompareAndSwap(false, true) {
		f.pending.Store(false)
		f.run(ctx)
		return
	}
	f.logger.Debug().Str("poller", f.name).Msg("fetch in flight, refresh deferred")
}

// run fetches in a new goroutine and fetches again while a deferred
// refresh is pending. The caller must hold the in-flight flag.
func (f *Fetcher[T]) run(ctx context.Context) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		for {
			v, err := f.fetch(ctx)
			f.complete(ctx, v, err)

			if ctx.Err() == nil && f.pending.CompareAndSwap(true, false) {
				continue
			}
			f.inFlight.Store(false)

			if ctx.Err() != nil || !f.pending.Load() || !f.inFlight.CompareAndSwap(false, true) {
				return
			}
			f.pending.Store(false)
		}
	}()
}

func (f *Fetcher[T]) complete(ctx context.Context, v T, err error) {
	f.emitMu.Lock()
	defer f.emitMu.Unlock()

	f.mu.Lock()
	if !f.live || ctx.Err() != nil {
		f.mu.Unlock()
		return
	}

	f.snap.Seq++
	f.snap.Loading = false
	if err != nil {
		f.snap.Err = err
	} else {
		f.snap.Value = v
		f.snap.HasValue = true
		f.snap.Err = nil
		f.snap.UpdatedAt = f.now()
	}
	snap := f.snap
	f.mu.Unlock()

	if err != nil {
		f.logger.Warn().Err(err).Str("poller", f.name).Bool("stale", snap.HasValue).Msg("poll failed, keeping previous data")
	}

	if f.onUpdate != nil {
		f.onUpdate(snap)
	}
}
