package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/cryptpix/internal/config"
	"github.com/MKhiriev/cryptpix/internal/logger"
)

const (
	sweepInterval = 10 * time.Minute
	stagingMaxAge = time.Hour
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns the server's background workers. Only the local blob
// store leaves staging files behind, so the sweeper is skipped without a
// files directory.
func NewWorkers(cfg config.Storage, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.Files.Dir != "" {
		w.workers = append(w.workers, NewStagingSweeper(cfg.Files.Dir, stagingMaxAge, sweepInterval, logger))
	}
	return w
}

// Run starts every worker in its own goroutine and returns once all of them
// have stopped.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
