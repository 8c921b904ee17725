package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidTolerance = New(
		"INVALID_TOLERANCE",
		"Tolerance must be a positive number of meters",
		http.StatusBadRequest,
	)

	ErrRouteIndexUnavailable = New(
		"ROUTE_INDEX_UNAVAILABLE",
		"Bus route data is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrFeedUnavailable = New(
		"TRAFFIC_FEED_UNAVAILABLE",
		"Traffic feed request failed",
		http.StatusBadGateway,
	)

	ErrCycleFailed = New(
		"CYCLE_FAILED",
		"Traffic monitoring cycle failed",
		http.StatusInternalServerError,
	)

	ErrCycleInProgress = New(
		"CYCLE_IN_PROGRESS",
		"Traffic monitoring cycle is already running",
		http.StatusConflict,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
