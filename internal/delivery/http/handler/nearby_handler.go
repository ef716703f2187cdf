package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/nearby-service/internal/pkg/errors"
	"github.com/nearby-service/internal/pkg/utils"
	"github.com/nearby-service/internal/pkg/validator"
	"github.com/nearby-service/internal/usecase"
	"github.com/nearby-service/internal/usecase/dto"
)

// NearbyHandler - обработчик поиска заправок и парковок рядом с точкой
type NearbyHandler struct {
	nearbyUC *usecase.NearbyUseCase
	logger   *zap.Logger
}

// NewNearbyHandler - создание нового NearbyHandler
func NewNearbyHandler(nearbyUC *usecase.NearbyUseCase, logger *zap.Logger) *NearbyHandler {
	return &NearbyHandler{
		nearbyUC: nearbyUC,
		logger:   logger,
	}
}

// Nearby godoc
// @Summary Сущности в радиусе
// @Description Возвращает заправки или парковки в радиусе от точки, по возрастанию расстояния. Пока данные не загружены, отвечает 503 DATA_UNAVAILABLE.
// @Tags Nearby
// @Produce json
// @Param kind path string true "Вид сущностей" Enums(fuel, parking)
// @Param lat query number true "Широта центра"
// @Param lng query number true "Долгота центра"
// @Param radius_km query number false "Радиус поиска в км" default(3)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/{kind}/nearby [get]
func (h *NearbyHandler) Nearby(c *fiber.Ctx) error {
	start := time.Now()
	var req dto.NearbyRequest
	req.Kind = c.Params("kind")

	var err error
	if req.Lat, req.Lng, req.RadiusKm, err = parsePointQuery(c); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearbyUC.Nearby(c.Context(), req)
	if err != nil {
		h.logRequestError("nearby", req.Kind, err)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:           result.Total,
		SnapshotVersion: result.SnapshotVersion,
		TimeMSec:        elapsedMs(start),
	})
}

// Search godoc
// @Summary Ранжированный поиск рядом
// @Description Ищет сущности в радиусе и упорядочивает их по режиму: price (дешевле выше), distance (ближе выше) или value (выгода заправки с учётом поездки). Дополнительно возвращает лучшую сущность каждого режима.
// @Tags Nearby
// @Produce json
// @Param kind path string true "Вид сущностей" Enums(fuel, parking)
// @Param lat query number true "Широта центра"
// @Param lng query number true "Долгота центра"
// @Param radius_km query number false "Радиус поиска в км" default(3)
// @Param mode query string false "Режим ранжирования" Enums(price, distance, value, efficiency) default(price)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/{kind}/search [get]
func (h *NearbyHandler) Search(c *fiber.Ctx) error {
	start := time.Now()
	var req dto.SearchRequest
	req.Kind = c.Params("kind")
	req.Mode = c.Query("mode")

	var err error
	if req.Lat, req.Lng, req.RadiusKm, err = parsePointQuery(c); err != nil {
		return utils.SendError(c, err)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearbyUC.Search(c.Context(), req)
	if err != nil {
		h.logRequestError("search", req.Kind, err)
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:           len(result.Entries),
		SnapshotVersion: result.SnapshotVersion,
		Cached:          result.Cached,
		TimeMSec:        elapsedMs(start),
	})
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

func (h *NearbyHandler) logRequestError(op, kind string, err error) {
	if errors.IsClientError(err) {
		h.logger.Debug("Rejected request", zap.String("op", op), zap.String("kind", kind), zap.Error(err))
		return
	}
	h.logger.Error("Request failed", zap.String("op", op), zap.String("kind", kind), zap.Error(err))
}

// parsePointQuery читает lat, lng и radius_km. Отсутствующий параметр остаётся nil,
// нечисловой - ошибка соответствующего вида.
func parsePointQuery(c *fiber.Ctx) (lat, lng, radiusKm *float64, err error) {
	if lat, err = queryFloat(c, "lat", errors.ErrInvalidCoordinates); err != nil {
		return nil, nil, nil, err
	}
	if lng, err = queryFloat(c, "lng", errors.ErrInvalidCoordinates); err != nil {
		return nil, nil, nil, err
	}
	if radiusKm, err = queryFloat(c, "radius_km", errors.ErrInvalidRadius); err != nil {
		return nil, nil, nil, err
	}
	return lat, lng, radiusKm, nil
}

func queryFloat(c *fiber.Ctx, name string, invalid *errors.AppError) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid.WithDetails(map[string]interface{}{
			name: raw,
		})
	}
	return &v, nil
}
