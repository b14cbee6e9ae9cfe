package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the uniform error envelope:
//
//	{"code": <kind name>, "message": ..., "details"?: [...], "traceback"?: ...}
//
// Status is transport metadata and never serialized.
type ErrorResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Details   []FieldError `json:"details,omitempty"`
	Traceback string       `json:"traceback,omitempty"`

	Status int `json:"-"`
}

// FieldError pins a validation failure to a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.Status, e.Code, e.Message)
}

// WriteJSON writes the envelope with its status code.
func (e *ErrorResponse) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// NewUnauthenticatedError returns the single envelope used for every
// authentication failure. Missing payload, bad signature and absent user
// id must be indistinguishable on the wire, so this constructor takes no
// arguments.
func NewUnauthenticatedError() *ErrorResponse {
	return &ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: "Unauthorized",
		Status:  http.StatusUnauthorized,
	}
}

func NewPlayerNotFoundError() *ErrorResponse {
	return &ErrorResponse{
		Code:    "PLAYER_NOT_FOUND",
		Message: "Player not found",
		Status:  http.StatusNotFound,
	}
}

// NewQueryValidationError reports malformed query parameters.
func NewQueryValidationError(details []FieldError) *ErrorResponse {
	return &ErrorResponse{
		Code:    "INVALID_QUERY_PARAMETERS",
		Message: "Invalid query parameters",
		Details: details,
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewParameterValidationError reports a request that parsed but carried
// unacceptable values.
func NewParameterValidationError(details []FieldError) *ErrorResponse {
	return &ErrorResponse{
		Code:    "INCORRECT_PARAMETERS",
		Message: "Incorrect parameters for request",
		Details: details,
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewInternalError returns the generic 500 envelope. The traceback is
// only attached by callers when the debug flag is enabled; operators get
// the full detail from logs either way.
func NewInternalError(traceback string) *ErrorResponse {
	return &ErrorResponse{
		Code:      "SOMETHING_WENT_WRONG",
		Message:   "Something went wrong",
		Traceback: traceback,
		Status:    http.StatusInternalServerError,
	}
}
