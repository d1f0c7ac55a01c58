package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	TotalItems int64  `json:"total_items,omitempty"`
	TotalPages int    `json:"total_pages,omitempty"`
	Showing    string `json:"showing,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "status", statusCode, "error", err)
	}
}

func fail(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	writeJSON(w, statusCode, Response{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// Success responses
func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func SuccessWithMeta(w http.ResponseWriter, data any, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

// Unprocessable reports a well-formed request whose values cannot be used.
func Unprocessable(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", message, nil)
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, "CONFLICT", message, nil)
}

// BadGateway reports a failure of an upstream service such as the chat API.
func BadGateway(w http.ResponseWriter, message string) {
	fail(w, http.StatusBadGateway, "UPSTREAM_ERROR", message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}
