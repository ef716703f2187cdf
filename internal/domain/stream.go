package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamSnapshotRefreshed = "stream:snapshot:refreshed"
)

// SnapshotRefreshedEvent - данные вида Kind обновлены в БД, снимок нужно перечитать
type SnapshotRefreshedEvent struct {
	EventID     uuid.UUID  `json:"event_id"`
	Kind        EntityKind `json:"kind"`
	Source      string     `json:"source"`
	RefreshedAt time.Time  `json:"refreshed_at"`
}

// NewSnapshotRefreshedEvent создает событие с новым EventID
func NewSnapshotRefreshedEvent(kind EntityKind, source string) *SnapshotRefreshedEvent {
	return &SnapshotRefreshedEvent{
		EventID:     uuid.New(),
		Kind:        kind,
		Source:      source,
		RefreshedAt: time.Now().UTC(),
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
