// Package tui is the terminal front end of the AirGuard admin console,
// built on Bubble Tea. Every screen is a page of [RootModel]; live pages
// subscribe to their service on open and unsubscribe on close.
package tui

import (
	"context"

	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// LoginFlow runs the sign-in screen until an admin signs in or the user
// quits, in which case ErrUserQuit is returned.
func (t *TUI) LoginFlow(ctx context.Context) (models.User, error) {
	pages := map[string]page{
		pageLogin: NewLoginModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, pageLogin, nil, models.User{}, t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.User{}, ErrUserQuit
	}

	t.logger.Info().Str("account_id", result.user.AccountID).Msg("signed in")
	return result.user, nil
}

// MainLoop runs the console screens for user. It reports whether the user
// asked to log out rather than quit.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (logout bool, err error) {
	pages := map[string]page{
		pageDashboard:    newDashboardModel(t.services.ReadingsService),
		pageUsers:        newUsersModel(ctx, t.services.UsersService),
		pageChat:         newChatModel(ctx, t.services.ChatService, user),
		pageTimeline:     newTimelineModel(t.services.TimelineService),
		pageAnnouncement: newAnnouncementModel(ctx, t.services.AnnouncementService),
	}

	root := NewRootModel(pages, pageDashboard, mainTabs, user, t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	// the program may stop without the router seeing a quit key
	for _, p := range pages {
		p.close()
	}

	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
