package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// LLMClientInterface is the reasoning engine behind the planning loops.
// One call is one model turn: prompt in, free text out.
type LLMClientInterface interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient talks to Groq's OpenAI-compatible chat completion API.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(apiKey, model string) *GroqClient {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = groqBaseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated by Groq")
	}
	return resp.Choices[0].Message.Content, nil
}
