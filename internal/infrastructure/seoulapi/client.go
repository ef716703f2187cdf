package seoulapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nearby-service/internal/config"
	"github.com/nearby-service/internal/domain"
	"github.com/nearby-service/internal/domain/repository"
	"github.com/nearby-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	serviceName = "GetParkInfo"

	// resultOK - код успешного ответа открытого API
	resultOK = "INFO-000"
	// resultNoData - данных в запрошенном диапазоне нет
	resultNoData = "INFO-200"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	pageDelay  time.Duration
	logger     *zap.Logger
}

// NewClient создает клиент открытого API парковок Сеула
func NewClient(cfg *config.SeoulAPIConfig, logger *zap.Logger) repository.ParkingSource {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		pageSize:  pageSize,
		pageDelay: cfg.PageDelay,
		logger:    logger,
	}
}

// FetchAll выгружает все страницы GetParkInfo и нормализует строки
func (c *client) FetchAll(ctx context.Context) ([]*domain.ParkingLot, error) {
	if c.apiKey == "" {
		return nil, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"reason": "SEOUL_PARKING_API_KEY is not set",
		})
	}

	first, err := c.fetchPage(ctx, 1, c.pageSize)
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"reason": "empty first page",
		})
	}

	total := first.ListTotalCount
	rows := first.Rows
	c.logger.Info("Fetched first page of parking lots",
		zap.Int("rows", len(rows)),
		zap.Int("total", total))

	for start := c.pageSize + 1; start <= total; start += c.pageSize {
		// пауза между запросами, чтобы не упереться в лимит API
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pageDelay):
		}

		end := start + c.pageSize - 1
		if end > total {
			end = total
		}

		page, err := c.fetchPage(ctx, start, end)
		if err != nil {
			return nil, err
		}
		if page == nil {
			c.logger.Warn("Empty page", zap.Int("start", start), zap.Int("end", end))
			continue
		}
		rows = append(rows, page.Rows...)
	}

	lots := make([]*domain.ParkingLot, 0, len(rows))
	for i := range rows {
		lot, err := toParkingLot(&rows[i])
		if err != nil {
			c.logger.Warn("Skipping malformed parking row", zap.Error(err))
			continue
		}
		lots = append(lots, lot)
	}

	c.logger.Info("Fetched parking lots",
		zap.Int("rows", len(rows)),
		zap.Int("lots", len(lots)))

	return lots, nil
}

// fetchPage запрашивает строки [start, end]; nil без ошибки - в диапазоне нет данных
func (c *client) fetchPage(ctx context.Context, start, end int) (*parkInfoBody, error) {
	url := fmt.Sprintf("%s/%s/json/%s/%d/%d/", c.baseURL, c.apiKey, serviceName, start, end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("Failed to call Seoul open API", zap.Int("start", start), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errors.ErrUpstreamError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("Seoul open API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"status_code": resp.StatusCode,
		})
	}

	var parsed parkInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: decode response: %v", errors.ErrUpstreamError, err)
	}

	if parsed.GetParkInfo == nil {
		if parsed.Result != nil && parsed.Result.Code == resultNoData {
			return nil, nil
		}
		details := map[string]interface{}{"reason": "missing GetParkInfo"}
		if parsed.Result != nil {
			details["code"] = parsed.Result.Code
			details["message"] = parsed.Result.Message
		}
		return nil, errors.ErrUpstreamError.WithDetails(details)
	}

	if code := parsed.GetParkInfo.Result.Code; code != "" && code != resultOK {
		return nil, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"code":    code,
			"message": parsed.GetParkInfo.Result.Message,
		})
	}

	return parsed.GetParkInfo, nil
}

// toParkingLot приводит строку API к ParkingLot; raw_data хранит исходную строку
func toParkingLot(row *parkingRow) (*domain.ParkingLot, error) {
	if row.Code == "" {
		return nil, fmt.Errorf("row without PKLT_CD (name %q)", row.Name)
	}

	raw, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("marshal raw row %s: %w", row.Code, err)
	}
	rawData := string(raw)

	lot := &domain.ParkingLot{
		Code:           row.Code,
		Name:           row.Name,
		Address:        optString(row.Address),
		TotalSpaces:    row.TotalSpaces.Value,
		BaseFee:        row.BaseFee.Value,
		BaseMinutes:    row.BaseMinutes.Value,
		AddFee:         row.AddFee.Value,
		AddUnitMinutes: row.AddUnitMinutes.Value,
		DailyMaxFee:    row.DailyMaxFee.Value,
		OperationType:  optString(row.OperationType),
		FeeType:        optString(row.FeeType),
		WeekdayOpen:    optString(row.WeekdayOpen),
		WeekdayClose:   optString(row.WeekdayClose),
		Phone:          optString(row.Phone),
		RawData:        &rawData,
	}

	lat, okLat := row.Lat.nonZero()
	lng, okLng := row.Lng.nonZero()
	if okLat && okLng {
		point := domain.GeoPoint{Lat: lat, Lng: lng}
		if point.Valid() {
			lot.SetLocation(&point)
		}
	}

	return lot, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
