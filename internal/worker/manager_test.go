package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingWorker ждёт Stop; ignoreStop имитирует зависший воркер
type blockingWorker struct {
	*BaseWorker
	started    chan struct{}
	ignoreStop bool
}

func newBlockingWorker(name string, ignoreStop bool) *blockingWorker {
	return &blockingWorker{
		BaseWorker: NewBaseWorker(name, zap.NewNop()),
		started:    make(chan struct{}),
		ignoreStop: ignoreStop,
	}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	close(w.started)
	if w.ignoreStop {
		<-ctx.Done()
		return ctx.Err()
	}
	<-w.StopChan()
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	a, b := newBlockingWorker("a", false), newBlockingWorker("b", false)
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	<-a.started
	<-b.started

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())

	// повторная остановка безопасна
	assert.NoError(t, a.Stop())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(0, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewWorkerManager(50*time.Millisecond, zap.NewNop())
	stuck := newBlockingWorker("stuck", true)
	m.Register(stuck)

	require.NoError(t, m.Start(ctx))
	<-stuck.started

	assert.Error(t, m.Stop())
}
