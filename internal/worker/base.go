package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker содержит общую логику остановки для всех воркеров
type BaseWorker struct {
	name     string
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewBaseWorker создает новый BaseWorker; логгер получает поле worker=name
func NewBaseWorker(name string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Stop сигнализирует воркеру о завершении; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, был ли вызван Stop
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
