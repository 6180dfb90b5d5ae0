package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatCompletionBody struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const chatCompletionResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gemini-2.5-flash",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "# Notes\n\n- point one"}
  }]
}`

func TestAIGenerateRequest(t *testing.T) {
	var got chatCompletionBody
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionResponse))
	}))
	defer srv.Close()

	ai := NewAIWithKey("test-key", srv.URL+"/v1/", DefaultModel, DefaultTemperature)

	notes, err := ai.Generate(context.Background(), "Transcript:\nhello\n\nNotes:")
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n\n- point one", notes)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, DefaultSystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Transcript:\nhello\n\nNotes:", got.Messages[1].Content)
}

func TestAIGenerateDoesNotRetry(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded", "type": "server_error"}}`))
	}))
	defer srv.Close()

	ai := NewAIWithKey("test-key", srv.URL+"/v1/", DefaultModel, DefaultTemperature)

	_, err := ai.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAIGenerateRequiresAPIKey(t *testing.T) {
	ai := NewAIWithKey("", DefaultAPIBaseURL, DefaultModel, DefaultTemperature)

	_, err := ai.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "API key is required")
}

type recordingChatClient struct {
	req ChatRequest
}

func (c *recordingChatClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	c.req = req
	return "notes", nil
}

func TestAIUsesInjectedClient(t *testing.T) {
	client := &recordingChatClient{}
	ai := NewAI(client, "some-model", 0.3)

	notes, err := ai.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "notes", notes)
	assert.Equal(t, ChatRequest{
		Model:       "some-model",
		System:      DefaultSystemPrompt,
		Prompt:      "the prompt",
		Temperature: 0.3,
	}, client.req)
}

func TestAIGenerateConcurrentFirstUse(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionResponse))
	}))
	defer srv.Close()

	ai := NewAIWithKey("test-key", srv.URL+"/v1/", DefaultModel, DefaultTemperature)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = ai.Generate(context.Background(), "prompt")
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(workers), calls.Load())
}
