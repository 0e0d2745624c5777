package server

import "context"

// Server defines the lifecycle contract for the transport server managed by
// this package.
//
// RunServer blocks until ctx is cancelled or the listener fails, then shuts
// the server down gracefully.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
