package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/airguard-admin/internal/adapter"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/session"
	"github.com/MKhiriev/airguard-admin/internal/validators"
	"github.com/MKhiriev/airguard-admin/models"
)

type clientAuthService struct {
	session   *session.Session
	adapter   adapter.ServerAdapter
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(sess *session.Session, serverAdapter adapter.ServerAdapter, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		session:   sess,
		adapter:   serverAdapter,
		validator: validators.NewUserValidator(),
		logger:    log,
	}
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := a.validator.Validate(ctx, creds); err != nil {
		return models.User{}, err
	}

	resp, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	if err = checkAdmin(resp.User); err != nil {
		return models.User{}, err
	}

	if err = a.session.Init(ctx, resp.User, resp.Token); err != nil {
		if errors.Is(err, session.ErrEmptyToken) {
			return models.User{}, fmt.Errorf("start session: %w", err)
		}
		// the session is live; only the cache for the next start is missing
		a.logger.Warn().Err(err).Msg("session was not cached")
	}

	resp.User.Password = ""
	return resp.User, nil
}

func (a *clientAuthService) Restore(ctx context.Context) (models.User, error) {
	cached, err := a.session.Restore(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return models.User{}, ErrNoSession
	}
	if err != nil {
		return models.User{}, fmt.Errorf("restore session: %w", err)
	}

	fresh, err := a.adapter.GetUser(ctx, cached.ID)
	if err != nil {
		err = mapAdapterError(err)
		if errors.Is(err, ErrTokenIsExpiredOrInvalid) || errors.Is(err, ErrUserNotFound) {
			a.teardown(ctx)
		}
		return models.User{}, err
	}

	if err = checkAdmin(fresh); err != nil {
		a.teardown(ctx)
		return models.User{}, err
	}

	return fresh, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	return a.session.Teardown(ctx)
}

func (a *clientAuthService) teardown(ctx context.Context) {
	if err := a.session.Teardown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("error dropping stale session")
	}
}

func checkAdmin(u models.User) error {
	if u.Role != models.RoleAdmin {
		return ErrNotAdmin
	}
	if u.Status == models.StatusBlocked {
		return ErrAccountBlocked
	}
	return nil
}
