package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/poller"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/internal/tui"
	"github.com/MKhiriev/airguard-admin/models"
)

// UI is the part of the terminal front end the app drives.
type UI interface {
	LoginFlow(ctx context.Context) (models.User, error)
	MainLoop(ctx context.Context, user models.User) (logout bool, err error)
}

// drainTimeout bounds how long quitting waits for background pushes.
const drainTimeout = 5 * time.Second

type App struct {
	services  *service.ClientServices
	auth      service.ClientAuthService
	ui        UI
	scheduler *poller.Scheduler
	logger    *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, sched *poller.Scheduler, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil || sched == nil {
		return nil, errors.New("client app needs services, ui and scheduler")
	}
	return &App{
		services:  services,
		auth:      services.AuthService,
		ui:        ui,
		scheduler: sched,
		logger:    logger,
	}, nil
}

// Run resumes the cached session or signs in, then runs the console until
// the user quits. Logging out returns to the sign-in screen. On return the
// polling scheduler is closed and pending push notifications are given
// drainTimeout to finish.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown(ctx)

	for {
		user, err := a.signIn(ctx)
		if err != nil {
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		}

		logout, err := a.ui.MainLoop(ctx, user)
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		if err = a.auth.Logout(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("error clearing session")
		}
		a.logger.Info().Str("account_id", user.AccountID).Msg("signed out")
	}
}

func (a *App) signIn(ctx context.Context) (models.User, error) {
	user, err := a.auth.Restore(ctx)
	if err == nil {
		a.logger.Info().Str("account_id", user.AccountID).Msg("session restored")
		return user, nil
	}
	if !errors.Is(err, service.ErrNoSession) {
		a.logger.Warn().Err(err).Msg("cached session rejected")
	}

	return a.ui.LoginFlow(ctx)
}

func (a *App) shutdown(ctx context.Context) {
	a.scheduler.Close()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	if err := a.services.Wait(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("push notifications still pending on exit")
	}
}
