package server

import (
	"net/http"

	"github.com/gookit/validate"
	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
)

// QuizController serves the onboarding quiz.
type QuizController struct {
	service interfaces.QuizServiceInterface
	metrics MetricsProviderInterface
}

func NewQuizController(service interfaces.QuizServiceInterface, metrics MetricsProviderInterface) *QuizController {
	return &QuizController{service: service, metrics: metrics}
}

type quizRequest struct {
	UserID    string            `json:"userId"`
	Responses []ai.QuizResponse `json:"responses" validate:"required"`
}

func (qc *QuizController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if v := validate.Struct(req); !v.Validate() {
		writeError(w, apperrors.NewValidationError(v.Errors.One()))
		return
	}
	if len(req.Responses) == 0 {
		writeError(w, apperrors.NewValidationError("responses must not be empty"))
		return
	}

	// The quiz runs during onboarding, before sign-up; anonymous callers
	// get an analysis without a stored result.
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		userID = req.UserID
	}

	analysis := qc.service.Analyze(r.Context(), userID, req.Responses)
	qc.metrics.IncCompletions("quiz", analysis.Source)
	writeJSON(w, http.StatusOK, analysis)
}

func (qc *QuizController) Questions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"questions": qc.service.Questions()})
}
