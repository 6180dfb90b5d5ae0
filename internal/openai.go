package internal

import (
	"context"
	"fmt"
	"sync"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// DefaultSystemPrompt frames every generation call
const DefaultSystemPrompt = "You are a helpful assistant."

// Generator turns a rendered prompt into text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatClient is the subset of a chat completion API the notes generator needs
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest is one non-streaming chat completion call
type ChatRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
}

// OpenAIClient wraps the official OpenAI Go SDK. Any OpenAI-compatible
// endpoint works, including Gemini's.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates a new client with SDK retries disabled
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

// CreateChatCompletion implements ChatClient
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, req ChatRequest) (string, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// AI generates notes with a hosted chat model
type AI struct {
	client      func() (ChatClient, error)
	model       string
	temperature float64
	system      string
}

// NewAI creates a generator around an existing client
func NewAI(client ChatClient, model string, temperature float64) *AI {
	return &AI{
		client:      func() (ChatClient, error) { return client, nil },
		model:       model,
		temperature: temperature,
		system:      DefaultSystemPrompt,
	}
}

// NewAIWithKey creates a generator whose client is built on first use.
// The key is checked then, so commands that never generate work without one.
func NewAIWithKey(apiKey, baseURL, model string, temperature float64) *AI {
	return &AI{
		client: sync.OnceValues(func() (ChatClient, error) {
			if err := ValidateAPIKey(apiKey); err != nil {
				return nil, err
			}
			return NewOpenAIClient(apiKey, baseURL), nil
		}),
		model:       model,
		temperature: temperature,
		system:      DefaultSystemPrompt,
	}
}

// Generate sends one blocking chat completion request
func (ai *AI) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := ai.client()
	if err != nil {
		return "", err
	}

	content, err := client.CreateChatCompletion(ctx, ChatRequest{
		Model:       ai.model,
		System:      ai.system,
		Prompt:      prompt,
		Temperature: ai.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	return content, nil
}
