package dto

import "net/http"

// Transport-level error codes. Domain errors carry their own codes and pass
// through unchanged; these cover failures raised by the HTTP layer itself.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation is used when request binding validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeDuplicateRequest is used when an idempotency key was already processed
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes absent
// from the map are client errors and map to 400.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":        http.StatusConflict,
	"CODE_TAKEN":            http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	ErrCodeDuplicateRequest: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code. Unmapped
// codes come from domain validation and allocation rules, which are the
// caller's fault, so the default is 400 Bad Request.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
