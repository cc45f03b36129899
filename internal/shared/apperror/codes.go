package apperror

// Error codes surfaced in the response envelope. INVALID_STATE covers every
// run lifecycle violation (editing a locked run, paying an unlocked one);
// CONFLICT covers uniqueness collisions such as a duplicate run number.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	CodeInternalError = "INTERNAL_ERROR"
)
