package server

import (
	"net/http"

	"github.com/gookit/validate"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
)

// InterventionController serves the daily activity endpoints.
type InterventionController struct {
	service interfaces.InterventionServiceInterface
	metrics MetricsProviderInterface
}

func NewInterventionController(service interfaces.InterventionServiceInterface, metrics MetricsProviderInterface) *InterventionController {
	return &InterventionController{service: service, metrics: metrics}
}

type dailyInterventionRequest struct {
	UserID   string `json:"userId"`
	EMEID    uint   `json:"emeId"`
	EMEScore int    `json:"emeScore" validate:"min:0|max:10"`
}

func (ic *InterventionController) GenerateDaily(w http.ResponseWriter, r *http.Request) {
	var req dailyInterventionRequest
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

	intervention, err := ic.service.GenerateDaily(r.Context(), userID, req.EMEID, req.EMEScore)
	if err != nil {
		writeError(w, err)
		return
	}
	ic.metrics.IncCompletions("intervention", intervention.Source)
	writeJSON(w, http.StatusOK, intervention)
}

type generateInterventionRequest struct {
	EMEScore            int      `json:"emeScore" validate:"min:0|max:10"`
	Patterns            []string `json:"patterns"`
	RecentInterventions []string `json:"recentInterventions"`
}

func (ic *InterventionController) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateInterventionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}

	intervention := ic.service.Generate(r.Context(), req.EMEScore, req.Patterns, req.RecentInterventions)
	ic.metrics.IncCompletions("intervention", intervention.Source)
	writeJSON(w, http.StatusOK, intervention)
}

type completeInterventionRequest struct {
	UserID         string `json:"userId"`
	InterventionID uint   `json:"interventionId" validate:"required"`
}

func (ic *InterventionController) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeInterventionRequest
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

	if err := ic.service.Complete(r.Context(), userID, req.InterventionID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": true})
}
