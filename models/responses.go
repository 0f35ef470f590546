package models

// Response envelopes of the remote API. Every list endpoint wraps its
// payload in a named field; the console unwraps them in the adapter.

// LoginResponse is returned by POST /users/login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UsersResponse is returned by GET /users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// UserResponse is returned by GET /users/{id} and the mutation endpoints.
type UserResponse struct {
	User User `json:"user"`
}

// ReadingsResponse is returned by GET /aqReadings, /aqReadings/{model} and
// /aqChart. Readings are ordered newest first.
type ReadingsResponse struct {
	Readings []Reading `json:"aqReadings"`
}

// HistoryResponse is returned by GET /history.
type HistoryResponse struct {
	History []TimelineEntry `json:"history"`
}

// DeviceTokensResponse is returned by GET /users/notifications/getNotifs.
type DeviceTokensResponse struct {
	Tokens []string `json:"allDeviceNotifs"`
}

// EmailAddress is one element of [EmailsResponse].
type EmailAddress struct {
	Email string `json:"email"`
}

// EmailsResponse is returned by GET /users/emails.
type EmailsResponse struct {
	Emails []EmailAddress `json:"emails"`
}

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
