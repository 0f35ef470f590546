package service

import "errors"

// Errors shared by the console and the development API services.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong account id or password")
	ErrAccountBlocked      = errors.New("account is blocked")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)

// Console errors.
var (
	// ErrNotAdmin is returned when a non-admin account signs in to the
	// console.
	ErrNotAdmin = errors.New("only admins can use the console")

	// ErrNoSession is returned by actions that need a signed-in admin.
	ErrNoSession = errors.New("not signed in")

	// ErrNoReadings is returned when an announcement is composed before any
	// sensor has reported.
	ErrNoReadings = errors.New("no air quality readings available")

	// ErrNothingSelected is returned by a bulk delete without selected rows.
	ErrNothingSelected = errors.New("no rows selected")

	// ErrNoRecipients is returned by the development API when an email or
	// push request names nobody.
	ErrNoRecipients = errors.New("no recipients")
)

// ErrBulkDeleteFailed is returned by a bulk delete that left some selected
// accounts in place.
var ErrBulkDeleteFailed = errors.New("bulk delete failed")
