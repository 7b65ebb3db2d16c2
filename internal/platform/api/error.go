package api

import (
	"net/http"
	"time"
)

// ErrorDetails is the error body returned by every endpoint.
type ErrorDetails struct {
	Title            string `json:"title"`
	Status           int    `json:"status"`
	Details          string `json:"details"`
	DeveloperMessage string `json:"developerMessage"`
	Timestamp        string `json:"timestamp"`
	RequestID        string `json:"requestId,omitempty"`
	Fields           string `json:"fields,omitempty"`
	FieldsMessage    string `json:"fieldsMessage,omitempty"`
}

const (
	TitleBadRequest    = "Bad Request Exception, Check the Documentation"
	TitleInvalidFields = "Bad Request Exception, Invalid Fields"
	TitleUnauthorized  = "Unauthorized"
	TitleForbidden     = "Forbidden"
	TitleInternal      = "Internal Server Error"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

func NewError(status int, title, details, code, requestID string) ErrorDetails {
	return ErrorDetails{
		Title:            title,
		Status:           status,
		Details:          details,
		DeveloperMessage: code,
		Timestamp:        now().Format(time.RFC3339),
		RequestID:        requestID,
	}
}

func WriteError(w http.ResponseWriter, e ErrorDetails) {
	WriteJSON(w, e.Status, e)
}

// Convenience helpers
func BadRequest(w http.ResponseWriter, code, details, requestID string) {
	WriteError(w, NewError(http.StatusBadRequest, TitleBadRequest, details, code, requestID))
}

// InvalidFields reports request validation failures. fields and messages are
// comma separated, in the same order.
func InvalidFields(w http.ResponseWriter, details, fields, messages, requestID string) {
	e := NewError(http.StatusBadRequest, TitleInvalidFields, details, "VALIDATION_FAILED", requestID)
	e.Fields = fields
	e.FieldsMessage = messages
	WriteError(w, e)
}

func Unauthorized(w http.ResponseWriter, code, details, requestID string) {
	WriteError(w, NewError(http.StatusUnauthorized, TitleUnauthorized, details, code, requestID))
}

func Forbidden(w http.ResponseWriter, code, details, requestID string) {
	WriteError(w, NewError(http.StatusForbidden, TitleForbidden, details, code, requestID))
}

func RateLimited(w http.ResponseWriter, requestID string) {
	WriteError(w, NewError(http.StatusTooManyRequests, "Too Many Requests", "Too many requests", "RATE_LIMITED", requestID))
}

func Internal(w http.ResponseWriter, requestID string) {
	WriteError(w, NewError(http.StatusInternalServerError, TitleInternal, "Internal server error", "INTERNAL", requestID))
}
