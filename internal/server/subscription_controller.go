package server

import (
	"net/http"

	"github.com/gookit/validate"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
)

// SubscriptionController serves the trial lifecycle endpoints.
type SubscriptionController struct {
	service interfaces.SubscriptionServiceInterface
}

func NewSubscriptionController(service interfaces.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{service: service}
}

func (sc *SubscriptionController) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	status, err := sc.service.Status(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type startTrialRequest struct {
	UserID     string `json:"userId"`
	Email      string `json:"email" validate:"required|email"`
	CardNumber string `json:"cardNumber" validate:"required"`
	CardExpiry string `json:"cardExpiry" validate:"required"`
	CardCVC    string `json:"cardCvc" validate:"required"`
	CardName   string `json:"cardName" validate:"required"`
}

func (sc *SubscriptionController) StartTrial(w http.ResponseWriter, r *http.Request) {
	var req startTrialRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	trial, err := sc.service.StartTrial(r.Context(), domain.TrialRequest{
		UserID:     userID,
		Email:      req.Email,
		CardNumber: req.CardNumber,
		CardExpiry: req.CardExpiry,
		CardCVC:    req.CardCVC,
		CardName:   req.CardName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trial)
}

type cancelRequest struct {
	UserID string `json:"userId"`
}

func (sc *SubscriptionController) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := sc.service.Cancel(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "canceled"})
}
