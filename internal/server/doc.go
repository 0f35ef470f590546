// Package server wires and runs the development API.
//
// It provides orchestration for the HTTP server and the background workers,
// including startup, signal handling, and graceful shutdown.
package server
