package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// ToAPIError maps an application error to its HTTP representation.
// AppError types carry their own status mapping; anything else is a 500.
func ToAPIError(err error) *APIError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeNotFound:
			return New(http.StatusNotFound, string(appErr.Type), appErr.Message)
		case ErrTypeParsing:
			return New(http.StatusUnprocessableEntity, string(appErr.Type), appErr.Message)
		case ErrTypeValidation:
			return New(http.StatusBadRequest, string(appErr.Type), appErr.Message)
		case ErrTypeConfig:
			return New(http.StatusInternalServerError, string(appErr.Type), appErr.Message)
		default:
			return New(http.StatusInternalServerError, string(appErr.Type), appErr.Message)
		}
	}
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
