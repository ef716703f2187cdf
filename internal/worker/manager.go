package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// defaultShutdownTimeout - сколько ждать завершения воркеров, если не задано
const defaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры в отдельных горутинах и останавливает их вместе
type WorkerManager struct {
	workers         []Worker
	shutdownTimeout time.Duration
	logger          *zap.Logger
	wg              sync.WaitGroup
	mu              sync.Mutex
}

// NewWorkerManager создает новый WorkerManager
func NewWorkerManager(shutdownTimeout time.Duration, logger *zap.Logger) *WorkerManager {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &WorkerManager{
		workers:         make([]Worker, 0),
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// Register регистрирует воркер
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

func (m *WorkerManager) snapshot() []Worker {
	m.mu.Lock()
	defer m.mu.Unlock()
	workers := make([]Worker, len(m.workers))
	copy(workers, m.workers)
	return workers
}

// Start запускает все зарегистрированные воркеры и сразу возвращается
func (m *WorkerManager) Start(ctx context.Context) error {
	workers := m.snapshot()
	if len(workers) == 0 {
		return fmt.Errorf("no workers registered")
	}

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			m.logger.Info("Starting worker", zap.String("name", w.Name()))
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.Error(err))
			}
		}(w)
	}

	return nil
}

// Stop останавливает все воркеры и ждёт их не дольше shutdownTimeout
func (m *WorkerManager) Stop() error {
	workers := m.snapshot()
	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}

	return nil
}
