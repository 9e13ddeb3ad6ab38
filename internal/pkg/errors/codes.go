package errors

import "net/http"

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

var (
	ErrValidation = New(
		CodeValidation,
		"Request validation failed",
		http.StatusBadRequest,
	)

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

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Malformed geometry",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Missing or invalid bearer token",
		http.StatusUnauthorized,
	)

	ErrForbiddenNetwork = New(
		CodeForbidden,
		"Network type is outside of the actor's permission set",
		http.StatusForbidden,
	)

	ErrForbiddenZone = New(
		CodeForbidden,
		"Actor is not allowed to edit zones",
		http.StatusForbidden,
	)

	ErrNodeNotFound = New(
		"NODE_NOT_FOUND",
		"Network node not found",
		http.StatusNotFound,
	)

	ErrLineNotFound = New(
		"LINE_NOT_FOUND",
		"Network line not found",
		http.StatusNotFound,
	)

	ErrZoneNotFound = New(
		"ZONE_NOT_FOUND",
		"Zone not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
