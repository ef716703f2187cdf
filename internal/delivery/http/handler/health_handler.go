package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/usecase/dto"
)

// SnapshotReporter - состояние снимков в памяти
type SnapshotReporter interface {
	Stats() []domain.SnapshotInfo
	Ready() bool
}

// HealthHandler - проверка готовности инстанса
type HealthHandler struct {
	snapshots SnapshotReporter
}

// NewHealthHandler - создание нового HealthHandler
func NewHealthHandler(snapshots SnapshotReporter) *HealthHandler {
	return &HealthHandler{snapshots: snapshots}
}

// Health godoc
// @Summary Health check
// @Description 200, если все снимки загружены и не пусты; иначе 503 со статусом degraded
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "healthy",
		Snapshots: h.snapshots.Stats(),
	}
	if !h.snapshots.Ready() {
		resp.Status = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
