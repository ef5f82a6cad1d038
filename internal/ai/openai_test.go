package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestOpenAICompleter_RoundTrip(t *testing.T) {
	srv := fakeCompletionServer(t, `{"text":"from server"}`, http.StatusOK)
	defer srv.Close()

	c := NewOpenAIForBaseURL("test-key", "gpt-4o", srv.URL+"/v1", 2*time.Second)
	got := Generate(context.Background(), c, greetingTask(), "hello")

	assert.Equal(t, SourceModel, got.Source)
	assert.Equal(t, "from server", got.Value.Text)
}

func TestOpenAICompleter_ServerErrorDegrades(t *testing.T) {
	srv := fakeCompletionServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	c := NewOpenAIForBaseURL("test-key", "gpt-4o", srv.URL+"/v1", 2*time.Second)
	got := Generate(context.Background(), c, greetingTask(), "hello")

	assert.Equal(t, SourceFallback, got.Source)
	assert.Equal(t, "default text", got.Value.Text)
}

func TestOpenAICompleter_EmptyContentDegrades(t *testing.T) {
	srv := fakeCompletionServer(t, "", http.StatusOK)
	defer srv.Close()

	c := NewOpenAIForBaseURL("test-key", "gpt-4o", srv.URL+"/v1", 2*time.Second)
	got := Generate(context.Background(), c, greetingTask(), "hello")

	assert.Equal(t, SourceFallback, got.Source)
}

func TestOpenAICompleter_UnreachableServerDegrades(t *testing.T) {
	// Closed immediately so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewOpenAIForBaseURL("test-key", "gpt-4o", url+"/v1", time.Second)
	got := Generate(context.Background(), c, greetingTask(), "hello")

	assert.Equal(t, SourceFallback, got.Source)
	assert.Error(t, got.Err)
}
