package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
)

var _ adapter.ExtractionService = (*OpenAIExtractor)(nil)

// OpenAIExtractor calls the OpenAI chat completion API with a JSON-only
// response format and decodes the reply into the extraction schema.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
	maxOut int
}

func NewOpenAIExtractor(apiKey, model string, maxOut int) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("openai: empty api key")
	}
	return &OpenAIExtractor{
		client: openai.NewClient(apiKey),
		model:  model,
		maxOut: maxOut,
	}, nil
}

func (e *OpenAIExtractor) Provider() string { return "openai" }

func (e *OpenAIExtractor) Extract(ctx context.Context, in model.VetInput) (*adapter.ExtractionResult, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(in)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if e.maxOut > 0 {
		req.MaxTokens = e.maxOut
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, domain.ErrExtractionEmpty
	}
	return decodeResult(resp.Choices[0].Message.Content)
}
