package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/usecase"
	"go.uber.org/zap"
)

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Get data statistics
// @Description Возвращает счётчики заправок и парковок в БД и состояние снимков в памяти этого инстанса
// @Tags Statistics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Statistics}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")

	stats, err := h.statsUC.GetStatistics(c.Context())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
