package ai

import (
	"testing"

	"github.com/pulseapp/pulse-backend/internal/wellbeing"
	"github.com/stretchr/testify/assert"
)

func TestEMEPrompt_ContainsRatingsAndScore(t *testing.T) {
	r := wellbeing.Ratings{Mood: 3, Stress: 1, Energy: 2, Sleep: 4, SelfCriticism: 0}
	prompt := EMEPrompt(r, 8, nil)

	assert.Contains(t, prompt, "Humor: 3/4")
	assert.Contains(t, prompt, "Estresse: 1/4")
	assert.Contains(t, prompt, "Energia: 2/4")
	assert.Contains(t, prompt, "Sono: 4/4")
	assert.Contains(t, prompt, "Autocrítica: 0/4")
	assert.Contains(t, prompt, "Score EME calculado: 8/10")
}

func TestEMEPrompt_ExcludedPhrasesAppearVerbatim(t *testing.T) {
	previous := []string{
		"Seu corpo pede pausa, e tudo bem.",
		"Hoje o ritmo pode ser mais lento.",
		"Respirar fundo já é cuidado.",
	}
	prompt := EMEPrompt(wellbeing.Ratings{}, 5, previous)

	for _, p := range previous {
		assert.Contains(t, prompt, p)
	}
	assert.Contains(t, prompt, "1. Seu corpo pede pausa, e tudo bem.")
}

func TestEMETask_FallbackContent(t *testing.T) {
	fb := EMETask().Fallback()
	assert.Equal(t, "Você está aqui. Isso já é um passo.", fb.Phrase)
	assert.Equal(t, "Pequenos passos importam.", fb.Insight)
}

func TestEMETask_NormalizeFillsEmptyFields(t *testing.T) {
	task := EMETask()
	c := EMEContent{Phrase: "  ", Insight: "ok"}
	task.Normalize(&c)
	assert.Equal(t, "Você está aqui. Isso já é um passo.", c.Phrase)
	assert.Equal(t, "ok", c.Insight)
}

func TestPatternsTask_FallbackIsEmptyList(t *testing.T) {
	fb := PatternsTask().Fallback()
	assert.NotNil(t, fb.Patterns)
	assert.Empty(t, fb.Patterns)
}

func TestPatternsTask_NormalizeCapsAtThree(t *testing.T) {
	task := PatternsTask()
	s := PatternSet{Patterns: []RadarPattern{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}}
	task.Normalize(&s)
	assert.Len(t, s.Patterns, 3)
}

func TestQuizPrompt_EmbedsResponses(t *testing.T) {
	prompt := QuizPrompt([]QuizResponse{{QuestionID: 1, Answer: "often"}, {QuestionID: 2, Answer: "always"}})
	assert.Contains(t, prompt, `"questionId":1`)
	assert.Contains(t, prompt, `"answer":"often"`)
	assert.Contains(t, prompt, `"answer":"always"`)
}

func TestQuizTask_FallbackContent(t *testing.T) {
	fb := QuizTask().Fallback()
	assert.Equal(t, []string{"Exaustão", "Autocrítica", "Modo automático"}, fb.Patterns)
	assert.Equal(t, 6, fb.Score)
}

func TestQuizTask_NormalizeRejectsOutOfRangeScore(t *testing.T) {
	task := QuizTask()

	q := QuizAnalysis{Patterns: []string{"Exaustão"}, Score: 42}
	task.Normalize(&q)
	assert.Equal(t, 6, q.Score)

	q = QuizAnalysis{Patterns: []string{"Exaustão"}, Score: 3}
	task.Normalize(&q)
	assert.Equal(t, 3, q.Score)
}

func TestInterventionPrompt_ExclusionsVerbatim(t *testing.T) {
	recent := []string{"Respire com calma", "Escreva três linhas"}
	prompt := InterventionPrompt(4, []string{"Exaustão"}, recent)

	for _, r := range recent {
		assert.Contains(t, prompt, r)
	}
	assert.Contains(t, prompt, "Exaustão")
	assert.Contains(t, prompt, "(EME): 4/10")
}

func TestDailyInterventionPrompt_PinsTypeAndExcludesTitles(t *testing.T) {
	titles := []string{"Pausa do chá", "Alongue os ombros"}
	prompt := DailyInterventionPrompt(7, "body_awareness", titles)

	assert.Contains(t, prompt, "Tipo de intervenção escolhido: body_awareness")
	assert.Contains(t, prompt, `"type": "body_awareness"`)
	for _, title := range titles {
		assert.Contains(t, prompt, title)
	}
}

func TestDailyInterventionTask_NormalizeDefaultsToSelectedType(t *testing.T) {
	task := DailyInterventionTask("guided_pause")
	c := InterventionContent{Title: "t", Description: "d", Duration: 1, Instructions: []string{"x"}}
	task.Normalize(&c)
	assert.Equal(t, "guided_pause", c.Type)
}

func TestFallbackIntervention_Content(t *testing.T) {
	fb := fallbackIntervention()
	assert.Equal(t, "breathing", fb.Type)
	assert.Equal(t, "Respire com calma", fb.Title)
	assert.Equal(t, 2, fb.Duration)
	assert.Len(t, fb.Instructions, 4)
}
