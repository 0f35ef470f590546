package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/airguard-admin/internal/config"
	"github.com/MKhiriev/airguard-admin/internal/logger"
	"github.com/MKhiriev/airguard-admin/internal/service"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers builds the background workers of the development API. The
// reading simulator is only added when its interval is positive.
func NewWorkers(services *service.Services, cfg *config.ServerConfig, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.SimulatorInterval > 0 {
		w.workers = append(w.workers, NewReadingSimulator(services.ReadingService, cfg.SensorModel, cfg.SimulatorInterval, logger))
	}

	return w
}

// Run starts every worker in its own goroutine and returns.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Go(func() {
			worker.Run(ctx)
		})
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

// New wraps already built workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}
