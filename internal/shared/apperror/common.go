package apperror

import "net/http"

// Cross-domain fallbacks. Domain packages define their own sentinels (see
// internal/payroll/errors); these cover the generic mapping paths in ToHTTP.
var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)
