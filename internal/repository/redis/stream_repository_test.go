package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/domain"
	redisRepo "github.com/nearby-service/internal/repository/redis"
)

const (
	testStream = "test:stream:snapshot:refreshed"
	testBlock  = 200 * time.Millisecond
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testStream)
		client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, testBlock, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)

	// BUSYGROUP is not an error
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	require.NoError(t, repo.DestroyConsumerGroup(ctx, testStream, "test-group"))
	groups, err = client.XInfoGroups(ctx, testStream).Result()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestStreamRepository_PublishAndConsume(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, testBlock, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "instance-a"))
	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "instance-b"))

	event := domain.NewSnapshotRefreshedEvent(domain.EntityKindParking, "test")
	require.NoError(t, repo.PublishToStream(ctx, testStream, event))

	// каждая группа получает событие независимо
	for _, group := range []string{"instance-a", "instance-b"} {
		msgChan, err := repo.ConsumeStream(ctx, testStream, group, "consumer")
		require.NoError(t, err)

		select {
		case msg := <-msgChan:
			var received domain.SnapshotRefreshedEvent
			require.NoError(t, json.Unmarshal([]byte(msg.Data), &received))
			assert.Equal(t, event.EventID, received.EventID)
			assert.Equal(t, domain.EntityKindParking, received.Kind)

			require.NoError(t, repo.AckMessage(ctx, testStream, group, msg.ID))
		case <-time.After(3 * time.Second):
			t.Fatalf("timeout waiting for message in group %s", group)
		}

		pending, err := client.XPending(ctx, testStream, group).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), pending.Count)
	}
}

func TestStreamRepository_ConsumeStream_ContextCancellation(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, testBlock, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-cancel-group"))

	msgChan, err := repo.ConsumeStream(ctx, testStream, "test-cancel-group", "consumer")
	require.NoError(t, err)

	time.AfterFunc(100*time.Millisecond, cancel)

	select {
	case _, ok := <-msgChan:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for channel to close")
	}
}
