// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the development API
// handlers and the console.
//
// The API writes these into the "message" field of error bodies; the console
// matches on them to turn a generic HTTP status into a specific error.
// Keeping them in one place ensures consistent wording on both sides.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned when the account id and password do
	// not match.
	MsgInvalidCredentials = "Invalid account ID or password."

	// MsgAccountBlocked is returned on login to a blocked account.
	MsgAccountBlocked = "Account is blocked."

	// MsgUserAlreadyExists is returned when sign-up or edit would duplicate
	// an account id.
	MsgUserAlreadyExists = "User already exists."

	// MsgUserNotFound is returned for an unknown user id.
	MsgUserNotFound = "User not found."

	// MsgUserCreated, MsgUserUpdated and MsgUserDeleted acknowledge account
	// mutations.
	MsgUserCreated = "User created successfully."
	MsgUserUpdated = "User updated successfully."
	MsgUserDeleted = "User deleted successfully."

	// MsgEmailSent and MsgNotificationSent acknowledge outbox requests.
	MsgEmailSent        = "Email sent successfully."
	MsgNotificationSent = "Notification sent successfully."

	// MsgHistoryCreated acknowledges a new timeline entry.
	MsgHistoryCreated = "History created successfully."

	// MsgNoRecipients is returned when an email or push has nobody to go to.
	MsgNoRecipients = "no recipients provided"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is missing,
	// expired, or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgRouteNotFound and MsgMethodNotAllowed answer requests no route
	// serves.
	MsgRouteNotFound    = "route not found"
	MsgMethodNotAllowed = "method not allowed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
