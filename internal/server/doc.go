// Package server runs the HTTP transport of the eagle-pass backend.
//
// It owns the listener lifecycle: startup, per-request timeouts and graceful
// shutdown once the run context is cancelled.
package server
