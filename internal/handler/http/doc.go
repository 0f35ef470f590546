// Package http implements the development API, a local stand-in for the
// AirGuard REST API.
//
// It exposes the same routes and response envelopes as the remote service so
// the console can run against it unchanged. Request tracing, access logging,
// response compression and bearer token checks are handled here before
// requests are delegated to the service layer.
package http
