package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/crypto"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. A zero interval leaves the
// legacy seal worker out.
func NewWorkers(storages *store.Storages, cipher crypto.Cipher, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.LegacySealInterval > 0 {
		w.workers = append(w.workers, NewLegacySealWorker(storages.PasswordRepository, cipher, cfg, logger))
	} else {
		logger.Info().Msg("legacy seal worker is disabled")
	}

	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
