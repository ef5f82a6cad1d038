package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	response string
	err      error
	gotReq   completionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req completionRequest) (string, error) {
	s.gotReq = req
	return s.response, s.err
}

type greeting struct {
	Text  string `json:"text"`
	Extra string `json:"extra"`
}

func greetingTask() Task[greeting] {
	return Task[greeting]{
		Name:        "greeting",
		Temperature: 0.5,
		Fallback:    func() greeting { return greeting{Text: "default text", Extra: "default extra"} },
	}
}

func TestGenerate_ParsesModelResponse(t *testing.T) {
	stub := &stubCompleter{response: `{"text":"olá","extra":"mundo"}`}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "say hi")

	assert.Equal(t, SourceModel, got.Source)
	assert.False(t, got.Degraded())
	assert.NoError(t, got.Err)
	assert.Equal(t, "olá", got.Value.Text)
	assert.Equal(t, "mundo", got.Value.Extra)
	assert.Equal(t, "say hi", stub.gotReq.Prompt)
	assert.InDelta(t, 0.5, stub.gotReq.Temperature, 0.001)
}

func TestGenerate_AbsentFieldsKeepDefaults(t *testing.T) {
	stub := &stubCompleter{response: `{"text":"olá"}`}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "olá", got.Value.Text)
	assert.Equal(t, "default extra", got.Value.Extra)
}

func TestGenerate_FallbackOnTransportError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("connection refused")}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceFallback, got.Source)
	assert.True(t, got.Degraded())
	require.Error(t, got.Err)
	assert.Equal(t, "default text", got.Value.Text)
}

func TestGenerate_FallbackOnInvalidJSON(t *testing.T) {
	stub := &stubCompleter{response: "I cannot answer in JSON today"}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, "default text", got.Value.Text)
}

func TestGenerate_FallbackOnMalformedObject(t *testing.T) {
	stub := &stubCompleter{response: `{"text": unquoted}`}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceFallback, got.Source)
}

func TestGenerate_FallbackWithoutCredentials(t *testing.T) {
	c := newWithCompleter(nil, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceFallback, got.Source)
	require.Error(t, got.Err)
	assert.Equal(t, "default text", got.Value.Text)
}

func TestGenerate_ExtractsJSONFromCodeFence(t *testing.T) {
	stub := &stubCompleter{response: "```json\n{\"text\":\"fenced\"}\n```"}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, greetingTask(), "p")

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "fenced", got.Value.Text)
}

func TestGenerate_NormalizeRunsOnModelOutput(t *testing.T) {
	task := greetingTask()
	task.Normalize = func(g *greeting) {
		if g.Text == "" {
			g.Text = "normalized"
		}
	}
	stub := &stubCompleter{response: `{"text":"","extra":"x"}`}
	c := newWithCompleter(stub, time.Second)

	got := Generate(context.Background(), c, task, "p")

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "normalized", got.Value.Text)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`prefix {"a":1} suffix`))
	assert.Equal(t, "", extractJSON("no braces here"))
	assert.Equal(t, "", extractJSON("} reversed {"))
}
