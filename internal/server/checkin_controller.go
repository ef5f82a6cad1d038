package server

import (
	"net/http"
	"strconv"

	"github.com/gookit/validate"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
	"github.com/pulseapp/pulse-backend/internal/wellbeing"
)

// CheckinController serves the daily check-in flow and its stateless
// generation variants.
type CheckinController struct {
	service interfaces.CheckinServiceInterface
	metrics MetricsProviderInterface
}

func NewCheckinController(service interfaces.CheckinServiceInterface, metrics MetricsProviderInterface) *CheckinController {
	return &CheckinController{service: service, metrics: metrics}
}

type ratingsPayload struct {
	Mood          int `json:"mood" validate:"min:0|max:4"`
	Stress        int `json:"stress" validate:"min:0|max:4"`
	Energy        int `json:"energy" validate:"min:0|max:4"`
	Sleep         int `json:"sleep" validate:"min:0|max:4"`
	SelfCriticism int `json:"selfCriticism" validate:"min:0|max:4"`
}

func (p ratingsPayload) ratings() wellbeing.Ratings {
	return wellbeing.Ratings{
		Mood:          p.Mood,
		Stress:        p.Stress,
		Energy:        p.Energy,
		Sleep:         p.Sleep,
		SelfCriticism: p.SelfCriticism,
	}
}

type checkinRequest struct {
	UserID string `json:"userId"`
	ratingsPayload
}

func (cc *CheckinController) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req.ratingsPayload); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}
	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	outcome, err := cc.service.Submit(r.Context(), userID, req.ratings())
	if err != nil {
		writeError(w, err)
		return
	}
	cc.metrics.IncCompletions("eme", outcome.EME.Source)
	writeJSON(w, http.StatusOK, outcome)
}

func (cc *CheckinController) History(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveUserID(r, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := cc.service.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type generateEMERequest struct {
	ratingsPayload
	PreviousPhrases []string `json:"previousPhrases"`
}

func (cc *CheckinController) GenerateEME(w http.ResponseWriter, r *http.Request) {
	var req generateEMERequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req.ratingsPayload); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}

	eme := cc.service.GenerateEME(r.Context(), req.ratings(), req.PreviousPhrases)
	cc.metrics.IncCompletions("eme", eme.Source)
	writeJSON(w, http.StatusOK, eme)
}

func (cc *CheckinController) Patterns(w http.ResponseWriter, r *http.Request) {
	var req ratingsPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}

	report := cc.service.Patterns(r.Context(), req.ratings())
	cc.metrics.IncCompletions("patterns", report.Source)
	writeJSON(w, http.StatusOK, report)
}
