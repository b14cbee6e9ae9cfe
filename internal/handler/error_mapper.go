package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/playforge/miniapp-api/internal/middleware"
	"github.com/playforge/miniapp-api/internal/model"
	"github.com/playforge/miniapp-api/internal/service"
)

// MapServiceError converts a service error to an ErrorResponse envelope.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error codes across the API.
func MapServiceError(err error) *model.ErrorResponse {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrPlayerNotFound):
		return model.NewPlayerNotFoundError()

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrPlayerIDRequired):
		return model.NewParameterValidationError([]model.FieldError{
			{Field: "id", Message: err.Error()},
		})
	case errors.Is(err, service.ErrUsernameTooLong),
		errors.Is(err, service.ErrUsernameTaken):
		return model.NewParameterValidationError([]model.FieldError{
			{Field: "username", Message: err.Error()},
		})

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// HandleServiceError maps err and writes the envelope. Unexpected errors
// are logged with the request id; the stack is attached to the body only
// when traceback output is enabled.
func HandleServiceError(ctx context.Context, w http.ResponseWriter, err error, tracebackEnabled bool) {
	resp := MapServiceError(err)
	if resp.Status == http.StatusInternalServerError {
		slog.Error("unhandled service error",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		if tracebackEnabled {
			resp.Traceback = fmt.Sprintf("%v\n%s", err, debug.Stack())
		}
	}
	WriteError(w, resp)
}
