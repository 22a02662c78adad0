package http

import (
	"errors"
	"net/http"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
)

const timestampLayout = "2006-01-02 15:04:05"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "The required object was not found."
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "For the requested operation the conditions are not met."
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, "Incorrectly made request."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, reason := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "unexpected error"
	}

	writeJSON(w, code, ErrorResponse{
		Status:    statusName(code),
		Reason:    reason,
		Message:   message,
		Timestamp: time.Now().Format(timestampLayout),
	})
}

func statusName(code int) string {
	switch code {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
