package server

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/logger"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeBilling:
		status = http.StatusPaymentRequired
	case apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
	case apperrors.ErrorTypeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", appErr.LogFields()...)
	} else {
		logger.Warn("Request rejected", appErr.LogFields()...)
	}
	writeJSON(w, status, errorResponse{Error: appErr.Message, Code: appErr.Code})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return false
	}
	return true
}

// resolveUserID prefers the authenticated subject over the payload's user
// id and requires the result to be a UUID.
func resolveUserID(r *http.Request, bodyID string) (string, error) {
	id := UserIDFromContext(r.Context())
	if id == "" {
		id = bodyID
	}
	if id == "" {
		return "", apperrors.NewValidationError("userId is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.NewValidationError("userId must be a UUID")
	}
	return id, nil
}
