// Package workers runs the background jobs of the eagle-pass server.
//
// A [Worker] blocks in Run until its context is cancelled. [Workers]
// starts every configured worker and waits for all of them to return.
package workers

import "context"

// Worker is a long-running background job.
//
// Implementations must return promptly once ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
