package services

import (
	"context"
	"testing"
	"time"

	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstPick(n int) int { return 0 }

func TestChooseType_ExcludesRecentTypes(t *testing.T) {
	svc := &InterventionService{pick: firstPick}

	got := svc.chooseType([]string{"breathing", "writing", "body_awareness"})

	assert.Equal(t, "micro_challenge", got)
}

func TestChooseType_WindowIsLimitedToThree(t *testing.T) {
	svc := &InterventionService{pick: firstPick}

	// "breathing" sits outside the exclusion window, so it is eligible again.
	got := svc.chooseType([]string{"writing", "body_awareness", "micro_challenge", "breathing"})

	assert.Equal(t, "breathing", got)
}

func TestChooseType_PicksAmongRemainingTypes(t *testing.T) {
	svc := &InterventionService{pick: firstPick}

	got := svc.chooseType([]string{"guided_pause", "micro_challenge", "body_awareness"})

	// Window only bars the newest three, two types remain.
	assert.Equal(t, "breathing", got)
}

func TestChooseType_NoHistoryPicksFromFullCatalogue(t *testing.T) {
	svc := &InterventionService{pick: func(n int) int { return n - 1 }}

	got := svc.chooseType(nil)

	assert.Equal(t, ai.InterventionTypes[len(ai.InterventionTypes)-1], got)
}

func TestGenerate_DegradedReturnsBreathingFallback(t *testing.T) {
	svc := &InterventionService{aiClient: degradedAIClient(t), now: time.Now, pick: firstPick}

	got := svc.Generate(context.Background(), 3, nil, nil)

	assert.Equal(t, "fallback", got.Source)
	assert.Equal(t, "breathing", got.Type)
	assert.Equal(t, "Respire com calma", got.Title)
	assert.Equal(t, 2, got.Duration)
	assert.Len(t, got.Instructions, 4)
}

func TestGenerate_ModelContentPassedThrough(t *testing.T) {
	svc := &InterventionService{
		aiClient: modelAIClient(t, `{"type":"writing","title":"Despeje no papel","description":"Escreva sem filtro por dois minutos.","duration":2,"instructions":["Pegue papel e caneta","Escreva o que vier","Não releia agora"]}`),
		now:      time.Now,
		pick:     firstPick,
	}

	got := svc.Generate(context.Background(), 7, []string{"Autocrítica"}, []string{"Respire com calma"})

	assert.Equal(t, "model", got.Source)
	assert.Equal(t, "writing", got.Type)
	assert.Equal(t, "Despeje no papel", got.Title)
	require.Len(t, got.Instructions, 3)
}

func TestQuizAnalyze_DegradedReturnsFixedAnalysis(t *testing.T) {
	svc := &QuizService{aiClient: degradedAIClient(t)}

	got := svc.Analyze(context.Background(), "", []ai.QuizResponse{{QuestionID: 1, Answer: "often"}})

	assert.Equal(t, "fallback", got.Source)
	assert.Equal(t, []string{"Exaustão", "Autocrítica", "Modo automático"}, got.Patterns)
	assert.Equal(t, 6, got.Score)
}

func TestQuizQuestions_CatalogueIsStable(t *testing.T) {
	svc := &QuizService{}

	questions := svc.Questions()

	require.Len(t, questions, 9)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, "anxiety", questions[0].Category)
}
