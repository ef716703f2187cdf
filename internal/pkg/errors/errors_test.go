package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	detailed := ErrInvalidRadius.WithDetails(map[string]interface{}{"radius_km": -1})

	assert.True(t, stderrors.Is(detailed, ErrInvalidRadius))
	assert.False(t, stderrors.Is(detailed, ErrInvalidCoordinates))
	assert.Nil(t, ErrInvalidRadius.Details, "sentinel must stay untouched")

	wrapped := fmt.Errorf("load parking snapshot: %w", ErrDataUnavailable)
	assert.True(t, stderrors.Is(wrapped, ErrDataUnavailable))

	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "INVALID_RANK_MODE: Unknown ranking mode: must be one of price, distance, value",
		ErrInvalidRankMode.Error())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrInvalidCoordinates))
	assert.True(t, IsClientError(fmt.Errorf("parse: %w", ErrInvalidRankMode)))
	assert.False(t, IsClientError(ErrDataUnavailable))
	assert.False(t, IsClientError(stderrors.New("boom")))
}
