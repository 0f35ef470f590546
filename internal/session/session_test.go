package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/mock"
	"github.com/MKhiriev/airguard-admin/internal/store"
	"github.com/MKhiriev/airguard-admin/models"
)

var fixedNow = time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)

func newTestSession(t *testing.T) (*Session, *mock.MockSessionRepository) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockSessionRepository(ctrl)
	s := New(repo, logger.Nop())
	s.now = func() time.Time { return fixedNow }
	return s, repo
}

func admin() models.User {
	return models.User{ID: "u-1", AccountID: "admin-0001", Username: "Root", Role: models.RoleAdmin, Password: "secret"}
}

func TestInit(t *testing.T) {
	s, repo := newTestSession(t)
	ctx := context.Background()

	want := admin()
	want.Password = ""
	repo.EXPECT().SaveSession(ctx, models.Session{User: want, Token: "jwt", CreatedAt: fixedNow}).Return(nil)

	require.False(t, s.Active())
	require.NoError(t, s.Init(ctx, admin(), "jwt"))

	assert.True(t, s.Active())
	assert.Equal(t, "jwt", s.Token())
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, want, u, "password must not be kept")
}

func TestInit_EmptyToken(t *testing.T) {
	s, _ := newTestSession(t)

	assert.ErrorIs(t, s.Init(context.Background(), admin(), "  "), ErrEmptyToken)
	assert.False(t, s.Active())
}

func TestInit_CacheFailureKeepsSession(t *testing.T) {
	s, repo := newTestSession(t)
	repo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(errors.New("readonly"))

	err := s.Init(context.Background(), admin(), "jwt")
	require.Error(t, err)
	assert.True(t, s.Active())
	assert.Equal(t, "jwt", s.Token())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("cached", func(t *testing.T) {
		s, repo := newTestSession(t)
		cached := models.Session{User: models.User{ID: "u-1", Role: models.RoleAdmin}, Token: "jwt", CreatedAt: fixedNow}
		repo.EXPECT().LoadSession(ctx).Return(cached, nil)

		u, err := s.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
		assert.Equal(t, "jwt", s.Token())
	})

	t.Run("nothing cached", func(t *testing.T) {
		s, repo := newTestSession(t)
		repo.EXPECT().LoadSession(ctx).Return(models.Session{}, store.ErrSessionNotFound)

		_, err := s.Restore(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
		assert.False(t, s.Active())
	})

	t.Run("blank token", func(t *testing.T) {
		s, repo := newTestSession(t)
		repo.EXPECT().LoadSession(ctx).Return(models.Session{User: admin()}, nil)

		_, err := s.Restore(ctx)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("storage error", func(t *testing.T) {
		s, repo := newTestSession(t)
		repo.EXPECT().LoadSession(ctx).Return(models.Session{}, errors.New("corrupt"))

		_, err := s.Restore(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoSession)
	})
}

func TestTeardown(t *testing.T) {
	s, repo := newTestSession(t)
	ctx := context.Background()

	repo.EXPECT().SaveSession(ctx, gomock.Any()).Return(nil)
	repo.EXPECT().DeleteSession(ctx).Return(errors.New("readonly"))

	require.NoError(t, s.Init(ctx, admin(), "jwt"))
	require.Error(t, s.Teardown(ctx))

	assert.False(t, s.Active())
	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestInMemorySession(t *testing.T) {
	s := New(nil, logger.Nop())
	ctx := context.Background()

	_, err := s.Restore(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Init(ctx, admin(), "jwt"))
	assert.True(t, s.Active())
	require.NoError(t, s.Teardown(ctx))
	assert.False(t, s.Active())
}

func TestConcurrentTokenReads(t *testing.T) {
	s := New(nil, logger.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Init(ctx, admin(), "jwt")
		}()
		go func() {
			defer wg.Done()
			_ = s.Token()
			_ = s.Active()
		}()
	}
	wg.Wait()
	assert.Equal(t, "jwt", s.Token())
}
