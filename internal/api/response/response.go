// internal/api/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quantbr/fiiscan/internal/core"
)

// Meta contains response metadata. RefreshID ties a payload back to the
// dataset refresh it was computed from.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
	RefreshID string    `json:"refresh_id,omitempty"`
}

// SuccessResponse is the standard success response format.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	JSONWithRefresh(w, status, data, "")
}

// JSONWithRefresh writes a success response stamped with the dataset
// refresh the data came from.
func JSONWithRefresh(w http.ResponseWriter, status int, data any, refreshID string) {
	resp := SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC(), RefreshID: refreshID},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Error writes an error response.
func Error(w http.ResponseWriter, status int, err error) {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: detail})
}

// BadRequest writes a 400 response for malformed caller input.
func BadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{
		Code:    "BAD_REQUEST",
		Message: message,
	}})
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{
		Code:    "NOT_FOUND",
		Message: message,
	}})
}

// StatusFor maps a pipeline error to an HTTP status. Fetch and parse
// failures are upstream problems, everything else is internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrFetchFailed),
		errors.Is(err, core.ErrFetchTimeout),
		errors.Is(err, core.ErrNoTable),
		errors.Is(err, core.ErrSchemaMismatch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
