package tui

import (
	"github.com/MKhiriev/airguard-admin/internal/service"
	"github.com/MKhiriev/airguard-admin/models"
)

// NavigateTo switches the active page.
type NavigateTo struct {
	Page string
}

// LoginResult finishes the login flow when Err is nil.
type LoginResult struct {
	User models.User
	Err  error
}

// feedMsg delivers a state from src. Pages drop messages of feeds they no
// longer own.
type feedMsg[S any] struct {
	src   *feed[S]
	state S
}

type chatSentMsg struct {
	err error
}

type userLoadedMsg struct {
	user models.User
	err  error
}

type userSavedMsg struct {
	err error
}

type bulkDeletedMsg struct {
	mode    service.BulkMode
	results []service.DeleteResult
	err     error
}

type composedMsg struct {
	announcement service.Announcement
	err          error
}

type announcedMsg struct {
	err error
}

type clearStatusMsg struct{}
