package server

// Server is the lifecycle of the development API process: the HTTP listener
// together with the background workers it owns.
type Server interface {
	// RunServer serves until SIGINT or SIGTERM, then shuts the listener
	// down and waits for the workers to return.
	RunServer()

	// Shutdown stops the listener; in-flight requests get a grace period.
	Shutdown()
}
