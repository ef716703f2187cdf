package refresh

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/pkg/errors"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return m.Called(ctx, stream, group, messageID).Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) DestroyConsumerGroup(ctx context.Context, stream, group string) error {
	return m.Called(ctx, stream, group).Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

// fakeReloader запоминает запрошенные виды; bikes считается неизвестным видом
type fakeReloader struct {
	mu    sync.Mutex
	kinds []domain.EntityKind
}

func (f *fakeReloader) Reload(_ context.Context, kind domain.EntityKind) (*domain.SnapshotInfo, error) {
	f.mu.Lock()
	f.kinds = append(f.kinds, kind)
	f.mu.Unlock()

	if _, ok := domain.ParseEntityKind(string(kind)); !ok {
		return nil, errors.ErrInvalidEntityKind
	}
	return &domain.SnapshotInfo{Kind: kind, Ready: true, Version: uuid.NewString(), Entities: 10}, nil
}

func eventMessage(t *testing.T, id string, kind domain.EntityKind) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(domain.NewSnapshotRefreshedEvent(kind, "test"))
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestSnapshotRefreshWorker_ProcessesEvents(t *testing.T) {
	reloader := &fakeReloader{}
	streamRepo := new(MockStreamRepository)
	w := NewSnapshotRefreshWorker(streamRepo, reloader, "nearby-snapshot", zap.NewNop())

	assert.Contains(t, w.ConsumerGroup(), "nearby-snapshot-")

	messages := make(chan domain.StreamMessage, 3)
	messages <- eventMessage(t, "1-0", domain.EntityKindParking)
	messages <- domain.StreamMessage{ID: "2-0", Data: "{not json"}
	messages <- eventMessage(t, "3-0", domain.EntityKind("bikes"))
	close(messages)

	stream := domain.StreamSnapshotRefreshed
	streamRepo.On("CreateConsumerGroup", mock.Anything, stream, w.ConsumerGroup()).Return(nil)
	streamRepo.On("ConsumeStream", mock.Anything, stream, w.ConsumerGroup(), mock.Anything).Return(messages, nil)
	streamRepo.On("AckMessage", mock.Anything, stream, w.ConsumerGroup(), mock.Anything).Return(nil)
	streamRepo.On("DestroyConsumerGroup", mock.Anything, stream, w.ConsumerGroup()).Return(nil)

	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, []domain.EntityKind{domain.EntityKindParking, "bikes"}, reloader.kinds)
	// все сообщения подтверждены, включая невалидные
	streamRepo.AssertNumberOfCalls(t, "AckMessage", 3)
	streamRepo.AssertCalled(t, "AckMessage", mock.Anything, stream, w.ConsumerGroup(), "2-0")
	streamRepo.AssertCalled(t, "DestroyConsumerGroup", mock.Anything, stream, w.ConsumerGroup())
}

func TestSnapshotRefreshWorker_Stop(t *testing.T) {
	streamRepo := new(MockStreamRepository)
	w := NewSnapshotRefreshWorker(streamRepo, &fakeReloader{}, "nearby-snapshot", zap.NewNop())

	messages := make(chan domain.StreamMessage)
	consuming := make(chan struct{})
	stream := domain.StreamSnapshotRefreshed
	streamRepo.On("CreateConsumerGroup", mock.Anything, stream, w.ConsumerGroup()).Return(nil)
	streamRepo.On("ConsumeStream", mock.Anything, stream, w.ConsumerGroup(), mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			close(consuming)
			go func() {
				<-ctx.Done()
				close(messages)
			}()
		}).
		Return(messages, nil)
	streamRepo.On("DestroyConsumerGroup", mock.Anything, stream, w.ConsumerGroup()).Return(nil)

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	select {
	case <-consuming:
	case <-time.After(time.Second):
		t.Fatal("worker did not start consuming")
	}

	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	streamRepo.AssertCalled(t, "DestroyConsumerGroup", mock.Anything, stream, w.ConsumerGroup())
}

func TestSnapshotRefreshWorker_GroupCreationFails(t *testing.T) {
	streamRepo := new(MockStreamRepository)
	w := NewSnapshotRefreshWorker(streamRepo, &fakeReloader{}, "nearby-snapshot", zap.NewNop())

	streamRepo.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := w.Start(context.Background())
	require.Error(t, err)
	streamRepo.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
