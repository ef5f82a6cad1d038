package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pulseapp/pulse-backend/internal/wellbeing"
)

// InterventionTypes is the fixed enumeration of suggested activities.
var InterventionTypes = []string{
	"breathing",
	"writing",
	"body_awareness",
	"micro_challenge",
	"guided_pause",
}

// EMEContent is the supportive phrase + insight pair shown after a check-in.
type EMEContent struct {
	Phrase  string `json:"phrase"`
	Insight string `json:"insight"`
}

// RadarPattern is one identified emotional pattern.
type RadarPattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Intensity   string `json:"intensity"`
}

// PatternSet wraps the pattern list as the model returns it.
type PatternSet struct {
	Patterns []RadarPattern `json:"patterns"`
}

// QuizAnalysis is the onboarding quiz outcome.
type QuizAnalysis struct {
	Patterns []string `json:"patterns"`
	Score    int      `json:"score"`
}

// QuizResponse is one answered quiz question, embedded verbatim in the prompt.
type QuizResponse struct {
	QuestionID int    `json:"questionId"`
	Answer     string `json:"answer"`
}

// InterventionContent is a generated 1-3 minute activity.
type InterventionContent struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	Instructions []string `json:"instructions"`
}

const empatheticSystem = "Você é um assistente empático especializado em saúde emocional. Sempre responda em JSON válido."

// EMETask generates the daily phrase and insight.
func EMETask() Task[EMEContent] {
	return Task[EMEContent]{
		Name:        "eme",
		System:      empatheticSystem,
		Temperature: 0.9,
		MaxTokens:   200,
		Fallback: func() EMEContent {
			return EMEContent{
				Phrase:  "Você está aqui. Isso já é um passo.",
				Insight: "Pequenos passos importam.",
			}
		},
		Normalize: func(c *EMEContent) {
			if strings.TrimSpace(c.Phrase) == "" {
				c.Phrase = "Você está aqui. Isso já é um passo."
			}
			if strings.TrimSpace(c.Insight) == "" {
				c.Insight = "Pequenos passos importam."
			}
		},
	}
}

// EMEPrompt embeds the day's ratings, the computed score and the recent
// phrases the model must not repeat.
func EMEPrompt(r wellbeing.Ratings, score int, previousPhrases []string) string {
	var history strings.Builder
	for i, p := range previousPhrases {
		fmt.Fprintf(&history, "%d. %s\n", i+1, p)
	}

	return fmt.Sprintf(`Você é um assistente empático que ajuda pessoas a entenderem seu estado emocional.

Dados do check-in de hoje:
- Humor: %d/4
- Estresse: %d/4
- Energia: %d/4
- Sono: %d/4
- Autocrítica: %d/4

Score EME calculado: %d/10

Frases anteriores (NÃO repetir):
%s
Gere:
1. Uma frase principal (máximo 20 palavras) que seja:
   - Humana e acolhedora
   - Específica para os dados acima
   - Diferente das frases anteriores
   - Não clínica, não robótica
   - Focada em corpo, mente ou ritmo (varie o foco)

2. Um insight curto (máximo 15 palavras) que seja:
   - Prático e acionável
   - Encorajador
   - Concreto

Responda APENAS em formato JSON:
{
  "phrase": "sua frase aqui",
  "insight": "seu insight aqui"
}`, r.Mood, r.Stress, r.Energy, r.Sleep, r.SelfCriticism, score, history.String())
}

// PatternsTask identifies up to three emotional patterns; degraded calls
// return an empty list.
func PatternsTask() Task[PatternSet] {
	return Task[PatternSet]{
		Name:        "patterns",
		Temperature: 0.7,
		Fallback: func() PatternSet {
			return PatternSet{Patterns: []RadarPattern{}}
		},
		Normalize: func(s *PatternSet) {
			if s.Patterns == nil {
				s.Patterns = []RadarPattern{}
			}
			if len(s.Patterns) > 3 {
				s.Patterns = s.Patterns[:3]
			}
		},
	}
}

// PatternsPrompt embeds the day's ratings.
func PatternsPrompt(r wellbeing.Ratings) string {
	return fmt.Sprintf(`Você é uma assistente empática do Pulse.

Dados emocionais:
- Humor: %d/4
- Estresse: %d/4
- Energia: %d/4
- Autocrítica: %d/4

Identifique até 3 padrões emocionais relevantes entre:
- Ansiedade
- Exaustão
- Autocrítica
- Evitação
- Baixa energia

Para cada padrão, retorne JSON com:
{
  "patterns": [
    {
      "name": "nome do padrão",
      "description": "descrição breve e acolhedora (máx 25 palavras)",
      "intensity": "low" | "medium" | "high"
    }
  ]
}

REGRAS:
- Tom suave, não alarmista
- Máximo 3 padrões
- Seja específica aos dados
- Não use linguagem clínica

Responda APENAS com JSON válido.`, r.Mood, r.Stress, r.Energy, r.SelfCriticism)
}

// QuizTask scores emotional overload from the onboarding quiz.
func QuizTask() Task[QuizAnalysis] {
	return Task[QuizAnalysis]{
		Name:        "quiz",
		Temperature: 0.7,
		Fallback: func() QuizAnalysis {
			return QuizAnalysis{
				Patterns: []string{"Exaustão", "Autocrítica", "Modo automático"},
				Score:    6,
			}
		},
		Normalize: func(q *QuizAnalysis) {
			if len(q.Patterns) == 0 {
				q.Patterns = []string{"Exaustão", "Autocrítica", "Modo automático"}
			}
			if q.Score <= 0 || q.Score > 10 {
				q.Score = 6
			}
		},
	}
}

// QuizPrompt embeds the raw responses as JSON.
func QuizPrompt(responses []QuizResponse) string {
	encoded, err := json.Marshal(responses)
	if err != nil {
		encoded = []byte("[]")
	}

	return fmt.Sprintf(`Você é uma assistente empática do Pulse.

Respostas do quiz emocional (escala: never=0, sometimes=1, often=2, always=3):
%s

Analise e retorne JSON:
{
  "patterns": ["padrão 1", "padrão 2", "padrão 3"],
  "score": número de 0-10 representando sobrecarga emocional
}

Padrões possíveis:
- Exaustão
- Autocrítica
- Modo automático
- Evitação

REGRAS:
- Identifique 2-4 padrões mais relevantes
- Score baseado na intensidade geral
- Seja precisa mas acolhedora

Responda APENAS com JSON válido.`, encoded)
}

func fallbackIntervention() InterventionContent {
	return InterventionContent{
		Type:        "breathing",
		Title:       "Respire com calma",
		Description: "Uma pausa de 2 minutos para reconectar com sua respiração.",
		Duration:    2,
		Instructions: []string{
			"Inspire profundamente por 4 segundos",
			"Segure por 4 segundos",
			"Expire lentamente por 6 segundos",
			"Repita 5 vezes",
		},
	}
}

func normalizeIntervention(c *InterventionContent) {
	fb := fallbackIntervention()
	if strings.TrimSpace(c.Type) == "" {
		c.Type = fb.Type
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = fb.Title
	}
	if strings.TrimSpace(c.Description) == "" {
		c.Description = fb.Description
	}
	if c.Duration <= 0 {
		c.Duration = fb.Duration
	}
	if len(c.Instructions) == 0 {
		c.Instructions = fb.Instructions
	}
}

// InterventionTask generates an activity from score + patterns, used by the
// stateless endpoint.
func InterventionTask() Task[InterventionContent] {
	return Task[InterventionContent]{
		Name:        "intervention",
		Temperature: 0.8,
		Fallback:    fallbackIntervention,
		Normalize:   normalizeIntervention,
	}
}

// InterventionPrompt embeds the score, the identified patterns and the
// recent interventions the model must not repeat.
func InterventionPrompt(emeScore int, patterns, recentInterventions []string) string {
	return fmt.Sprintf(`Você é uma assistente empática do Pulse.

Estado emocional atual (EME): %d/10
Padrões identificados: %s
Intervenções recentes (NÃO repetir): %s

Escolha e adapte UMA intervenção de 1-3 minutos entre:
- Respiração guiada
- Escrita reflexiva curta
- Consciência corporal
- Micro-desafio
- Pausa guiada

Retorne JSON:
{
  "type": "breathing" | "writing" | "body_awareness" | "micro_challenge" | "guided_pause",
  "title": "título acolhedor",
  "description": "convite personalizado (máx 30 palavras)",
  "duration": número em minutos,
  "instructions": ["passo 1", "passo 2", "passo 3"]
}

REGRAS:
- Adapte ao estado emocional atual
- Seja prática e simples
- Tom humano e acolhedor
- Nunca repita intervenções recentes

Responda APENAS com JSON válido.`, emeScore, strings.Join(patterns, ", "), strings.Join(recentInterventions, ", "))
}

// DailyInterventionTask generates the persisted daily activity for an
// already-chosen type.
func DailyInterventionTask(selectedType string) Task[InterventionContent] {
	return Task[InterventionContent]{
		Name:        "daily_intervention",
		System:      "Você é um assistente empático especializado em bem-estar emocional. Sempre responda em JSON válido.",
		Temperature: 0.8,
		MaxTokens:   300,
		Fallback:    fallbackIntervention,
		Normalize: func(c *InterventionContent) {
			if strings.TrimSpace(c.Type) == "" {
				c.Type = selectedType
			}
			normalizeIntervention(c)
		},
	}
}

// DailyInterventionPrompt pins the chosen type and excludes recent titles.
func DailyInterventionPrompt(emeScore int, selectedType string, recentTitles []string) string {
	var titles strings.Builder
	for i, t := range recentTitles {
		fmt.Fprintf(&titles, "%d. %s\n", i+1, t)
	}

	return fmt.Sprintf(`Você é um assistente empático que cria intervenções breves de bem-estar emocional.

Score EME do usuário: %d/10

Tipo de intervenção escolhido: %s

Títulos recentes (NÃO repetir):
%s
Crie uma intervenção de 1-3 minutos que seja:
- Específica para o score EME (%d/10)
- Do tipo: %s
- Com título diferente dos anteriores
- Humana e acolhedora
- Prática e acionável
- Não clínica

Tipos de intervenção:
- breathing: exercícios de respiração
- writing: escrita reflexiva curta
- body_awareness: consciência corporal
- micro_challenge: pequeno desafio positivo
- guided_pause: pausa guiada

Responda APENAS em formato JSON:
{
  "type": "%s",
  "title": "título da intervenção (máx 50 caracteres)",
  "description": "descrição breve (máx 100 caracteres)",
  "duration": número_de_minutos,
  "instructions": ["passo 1", "passo 2", "passo 3", "passo 4"]
}`, emeScore, selectedType, titles.String(), emeScore, selectedType, selectedType)
}
