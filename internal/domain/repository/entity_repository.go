package repository

import (
	"context"

	"github.com/nearby-service/internal/domain"
)

// EntitySource - источник сущностей для построения снапшота
type EntitySource interface {
	// LoadAll возвращает все сущности вида kind, уже нормализованные
	LoadAll(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error)
}

// EntityStore - неизменяемый снапшот сущностей в памяти.
// Запрос видит либо старый, либо новый снапшот целиком.
type EntityStore interface {
	// AllEntities возвращает все сущности снапшота; ErrDataUnavailable, если снапшота нет
	AllEntities(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error)

	// Candidates возвращает надмножество сущностей с координатами в радиусе radiusMeters от center
	Candidates(ctx context.Context, kind domain.EntityKind, center domain.GeoPoint, radiusMeters float64) ([]*domain.Entity, error)

	// Version возвращает версию текущего снапшота или "" если его нет
	Version(kind domain.EntityKind) string
}
