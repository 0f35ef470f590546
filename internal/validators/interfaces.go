// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it leaves the console or is
// accepted by the development API.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values. Supports
//     optional field-level scoping for targeted validation.
//   - FieldErrors: every failed field with its human readable message, so a
//     form can show all problems at once.
//
// Validation failures unwrap to [ErrValidation] and never reach the network.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
