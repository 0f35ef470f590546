package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/invalidation"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
	"golang.org/x/sync/errgroup"
)

const defaultBulkDeleteConcurrency = 4

// UserStats counts accounts by role and by status.
type UserStats struct {
	Total    int
	Admins   int
	Students int
	Ready    int
	Blocked  int
}

// CountUsers tallies users.
func CountUsers(users []models.User) UserStats {
	st := UserStats{Total: len(users)}
	for _, u := range users {
		switch u.Role {
		case models.RoleAdmin:
			st.Admins++
		case models.RoleStudent:
			st.Students++
		}
		switch u.Status {
		case models.StatusReady:
			st.Ready++
		case models.StatusBlocked:
			st.Blocked++
		}
	}
	return st
}

// UsersState is the account list, newest first.
type UsersState struct {
	Users []models.User
	Stats UserStats
	ViewMeta
}

// Selection is the row selection a bulk delete consumes.
type Selection interface {
	Selected() []string
	ClearSelection()
}

// BulkMode selects how a bulk delete treats failures.
type BulkMode int

const (
	// BulkSequential deletes in selection order and stops at the first
	// failure. Accounts before the failing one stay deleted.
	BulkSequential BulkMode = iota
	// BulkBestEffort attempts every account in parallel.
	BulkBestEffort
)

func (m BulkMode) String() string {
	if m == BulkBestEffort {
		return "best-effort"
	}
	return "sequential"
}

// DeleteResult is the outcome for one account of a bulk delete.
type DeleteResult struct {
	ID  string
	Err error
}

type clientUsersService struct {
	key         poller.Key
	concurrency int

	adapter   adapter.ServerAdapter
	scheduler *poller.Scheduler
	bus       *invalidation.Bus
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientUsersService(
	workers config.ClientWorkers,
	serverAdapter adapter.ServerAdapter,
	sched *poller.Scheduler,
	bus *invalidation.Bus,
	log *logger.Logger,
) ClientUsersService {
	concurrency := workers.BulkDeleteConcurrency
	if concurrency <= 0 {
		concurrency = defaultBulkDeleteConcurrency
	}
	return &clientUsersService{
		key:         poller.Key{Endpoint: endpointUsers},
		concurrency: concurrency,
		adapter:     serverAdapter,
		scheduler:   sched,
		bus:         bus,
		validator:   validators.NewUserValidator(),
		logger:      log,
	}
}

func (u *clientUsersService) Watch(fn func(UsersState)) func() {
	return watchEntity(u.scheduler, u.bus, invalidation.Users, u.key, u.adapter.ListUsers, func(snap poller.Snapshot[[]models.User]) {
		st := UsersState{ViewMeta: metaOf(snap)}
		if snap.HasValue {
			st.Users = slices.Clone(snap.Value)
			slices.Reverse(st.Users)
			st.Stats = CountUsers(st.Users)
		}
		fn(st)
	})
}

func (u *clientUsersService) Refresh() {
	u.scheduler.Refresh(u.key)
}

func (u *clientUsersService) Get(ctx context.Context, id string) (models.User, error) {
	user, err := u.adapter.GetUser(ctx, id)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	return user, nil
}

func (u *clientUsersService) Add(ctx context.Context, form models.UserForm) error {
	if err := u.validator.Validate(ctx, form); err != nil {
		return err
	}

	form.Password = models.DefaultPassword(form.Role)
	if err := u.adapter.CreateUser(ctx, form); err != nil {
		return mapAdapterError(err)
	}

	log := u.logger.WithStr("account_id", form.AccountID)
	log.Info().Str("role", string(form.Role)).Msg("user created")

	if form.Email != "" {
		if err := u.adapter.SendEmail(ctx, models.CredentialsEmail(form.Email, form.Role)); err != nil {
			log.Warn().Err(err).Msg("error mailing credentials to new user")
		}
	}

	u.bus.Publish(invalidation.Users)
	return nil
}

func (u *clientUsersService) Edit(ctx context.Context, id string, form models.UserForm) error {
	if err := u.validator.Validate(ctx, form); err != nil {
		return err
	}

	if err := u.adapter.EditUser(ctx, id, form); err != nil {
		return mapAdapterError(err)
	}

	u.logger.Info().Str("user_id", id).Msg("user updated")
	u.bus.Publish(invalidation.Users)
	return nil
}

func (u *clientUsersService) BulkDelete(ctx context.Context, sel Selection, mode BulkMode) ([]DeleteResult, error) {
	ids := sel.Selected()
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}

	defer func() {
		sel.ClearSelection()
		u.bus.Publish(invalidation.Users)
	}()

	u.logger.Info().Int("selected", len(ids)).Str("mode", mode.String()).Msg("bulk delete started")

	if mode == BulkBestEffort {
		return u.deleteBestEffort(ctx, ids)
	}
	return u.deleteSequential(ctx, ids)
}

func (u *clientUsersService) deleteSequential(ctx context.Context, ids []string) ([]DeleteResult, error) {
	results := make([]DeleteResult, 0, len(ids))
	for _, id := range ids {
		err := u.adapter.DeleteUser(ctx, id)
		if err != nil {
			err = mapAdapterError(err)
			results = append(results, DeleteResult{ID: id, Err: err})
			u.logger.Warn().Err(err).Str("user_id", id).Int("deleted", len(results)-1).Msg("bulk delete aborted")
			return results, fmt.Errorf("%w: %s: %w", ErrBulkDeleteFailed, id, err)
		}
		results = append(results, DeleteResult{ID: id})
	}
	return results, nil
}

func (u *clientUsersService) deleteBestEffort(ctx context.Context, ids []string) ([]DeleteResult, error) {
	results := make([]DeleteResult, len(ids))

	var g errgroup.Group
	g.SetLimit(u.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			err := u.adapter.DeleteUser(ctx, id)
			if err != nil {
				err = mapAdapterError(err)
				u.logger.Warn().Err(err).Str("user_id", id).Msg("error deleting user")
			}
			results[i] = DeleteResult{ID: id, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrBulkDeleteFailed, failed, len(ids))
	}
	return results, nil
}

// idSelection is a [Selection] over a fixed id list.
type idSelection struct {
	mu  sync.Mutex
	ids []string
}

// NewSelection returns a [Selection] over ids.
func NewSelection(ids ...string) Selection {
	return &idSelection{ids: slices.Clone(ids)}
}

func (s *idSelection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

func (s *idSelection) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
}
