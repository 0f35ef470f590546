package service

import (
	"context"

	"github.com/MKhiriev/airguard-admin/models"
)

// ClientAuthService signs the admin in and out of the console.
type ClientAuthService interface {
	// Login validates creds, authenticates against the remote API and starts
	// the session. Only active admins are accepted.
	// Returns ErrWrongCredentials, ErrAccountBlocked, ErrNotAdmin or a
	// validation error.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// Restore resumes the cached session after checking that its token is
	// still accepted by the server. Returns ErrNoSession when there is
	// nothing to resume.
	Restore(ctx context.Context) (models.User, error)

	// Logout ends the session and drops the cached copy.
	Logout(ctx context.Context) error
}

// ClientChatService owns the live chat log.
type ClientChatService interface {
	// Watch subscribes fn to chat updates. fn is called after every poll and
	// after every successful Send.
	Watch(fn func(ChatState)) (unsubscribe func())

	// Send posts text as the signed-in admin and appends the acknowledged
	// message to the local log. A push notification fan-out follows in the
	// background.
	Send(ctx context.Context, text string) (models.ChatMessage, error)
}

// ClientReadingsService exposes the dashboard views of sensor readings.
type ClientReadingsService interface {
	// WatchDisplay follows the latest reading of the configured sensor and
	// keeps the previous one for trend arrows.
	WatchDisplay(fn func(DisplayState)) (unsubscribe func())

	// WatchRadar follows the five pollutant values of the latest reading.
	WatchRadar(fn func(RadarState)) (unsubscribe func())

	// WatchSeries follows the chart readings within r.
	WatchSeries(r TimeRange, fn func(SeriesState)) (unsubscribe func())

	// Refresh re-fetches every readings view now.
	Refresh()
}

// ClientUsersService manages accounts.
type ClientUsersService interface {
	// Watch subscribes fn to the account list. The list is fetched on
	// subscribe and after every users invalidation.
	Watch(fn func(UsersState)) (unsubscribe func())

	// Refresh re-fetches the account list now.
	Refresh()

	// Get fetches one account.
	Get(ctx context.Context, id string) (models.User, error)

	// Add validates form, signs the account up with the default password of
	// its role and mails the credentials when an email is given.
	Add(ctx context.Context, form models.UserForm) error

	// Edit validates form and replaces account id's editable fields.
	Edit(ctx context.Context, id string, form models.UserForm) error

	// BulkDelete deletes every selected account and clears the selection.
	BulkDelete(ctx context.Context, sel Selection, mode BulkMode) ([]DeleteResult, error)
}

// ClientTimelineService exposes the announcement history.
type ClientTimelineService interface {
	// Watch subscribes fn to the history, sorted newest first.
	Watch(fn func(TimelineState)) (unsubscribe func())

	// Refresh re-fetches the history now.
	Refresh()
}

// ClientAnnouncementService composes and sends air quality alerts.
type ClientAnnouncementService interface {
	// Compose builds an alert from the latest reading, addressed to every
	// account with an email.
	Compose(ctx context.Context) (Announcement, error)

	// Send delivers a by email, history, chat and push, in that order.
	// The first failure aborts the sequence.
	Send(ctx context.Context, a Announcement) error
}
