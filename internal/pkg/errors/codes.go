package errors

import "net/http"

const (
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeInvalidRadius      = "INVALID_RADIUS"
	CodeInvalidRankMode    = "INVALID_RANK_MODE"
	CodeInvalidEntityKind  = "INVALID_ENTITY_KIND"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeDataUnavailable    = "DATA_UNAVAILABLE"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeCacheError         = "CACHE_ERROR"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeInternalServer     = "INTERNAL_SERVER_ERROR"
)

// InvalidInput
var (
	ErrInvalidCoordinates = New(
		CodeInvalidCoordinates,
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		CodeInvalidRadius,
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRankMode = New(
		CodeInvalidRankMode,
		"Unknown ranking mode: must be one of price, distance, value",
		http.StatusBadRequest,
	)

	ErrInvalidEntityKind = New(
		CodeInvalidEntityKind,
		"Unknown entity kind: must be one of fuel, parking",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		CodeInvalidRequest,
		"Invalid request parameters",
		http.StatusBadRequest,
	)
)

// ErrDataUnavailable - снимок данных ещё не загружен или пуст.
// Отличается от пустого результата поиска.
var ErrDataUnavailable = New(
	CodeDataUnavailable,
	"Entity data is not loaded yet",
	http.StatusServiceUnavailable,
)

var (
	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrUpstreamError = New(
		CodeUpstreamError,
		"Upstream data source failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
