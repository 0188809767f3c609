package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"socialforum/internal/service"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Detail: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeSuccess(w, MessageResponse{Message: message}, http.StatusOK)
}

// statusFor maps service errors onto a status code and the detail shown to the client.
func statusFor(err error) (int, string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrConflictDetected):
		status = http.StatusConflict
	case errors.Is(err, service.ErrResourceNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrSelfActionForbidden):
		status = http.StatusNotAcceptable
	case errors.Is(err, service.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	var detail *service.DetailError
	if errors.As(err, &detail) && status != http.StatusInternalServerError {
		return status, detail.Detail
	}

	switch status {
	case http.StatusInternalServerError:
		return status, "Internal server error"
	case http.StatusConflict:
		if errors.Is(err, service.ErrConflictDetected) {
			return status, "Concurrent modification, try again"
		}
	case http.StatusUnauthorized:
		return status, "Invalid token"
	}
	return status, http.StatusText(status)
}

func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	WriteError(w, detail, status)
}

func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "Invalid request body", http.StatusUnprocessableEntity)
		return false
	}
	return h.validate(w, dst)
}

func (h *Handlers) validate(w http.ResponseWriter, payload interface{}) bool {
	err := h.Validate.Struct(payload)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		detail := fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			detail = fmt.Sprintf("field '%s' failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param())
		}
		WriteError(w, detail, http.StatusUnprocessableEntity)
		return false
	}

	WriteError(w, "Invalid request body", http.StatusUnprocessableEntity)
	return false
}
