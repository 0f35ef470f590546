package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/mock"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

// testEnv bundles the collaborators every console service needs.
type testEnv struct {
	adapter   *mock.MockServerAdapter
	scheduler *poller.Scheduler
	bus       *invalidation.Bus
	session   *session.Session
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	sched := poller.NewScheduler(context.Background(), logger.Nop())
	t.Cleanup(sched.Close)

	return &testEnv{
		adapter:   mock.NewMockServerAdapter(ctrl),
		scheduler: sched,
		bus:       invalidation.NewBus(logger.Nop()),
		session:   session.New(nil, logger.Nop()),
	}
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, e.session.Init(context.Background(), testAdmin, "jwt-token"))
}

// collect returns a listener that buffers every state it receives.
func collect[S any]() (func(S), <-chan S) {
	ch := make(chan S, 128)
	return func(s S) {
		select {
		case ch <- s:
		default:
		}
	}, ch
}

// waitFor drains ch until a state satisfies pred.
func waitFor[S any](t *testing.T, ch <-chan S, pred func(S) bool) S {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case s := <-ch:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for state")
			var zero S
			return zero
		}
	}
}
