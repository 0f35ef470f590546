// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the AirGuard admin console runtime.
//
// It restores or starts the admin session, runs the terminal screens and
// shuts the polling scheduler down when the console exits.
package client
