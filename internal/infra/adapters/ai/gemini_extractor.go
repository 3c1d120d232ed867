package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"medvextract/internal/domain"
	"medvextract/internal/domain/model"
	"medvextract/internal/domain/ports/adapter"
)

var _ adapter.ExtractionService = (*GeminiExtractor)(nil)

// GeminiExtractor calls the Gemini API using the official SDK.
type GeminiExtractor struct {
	client *genai.Client
	model  string
	maxOut int
}

func NewGeminiExtractor(ctx context.Context, apiKey, baseURL, model string, maxOut int) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiExtractor{client: c, model: model, maxOut: maxOut}, nil
}

func (e *GeminiExtractor) Provider() string { return "gemini" }

func (e *GeminiExtractor) Extract(ctx context.Context, in model.VetInput) (*adapter.ExtractionResult, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}
	if e.maxOut > 0 {
		cfg.MaxOutputTokens = int32(e.maxOut)
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(userPrompt(in)), cfg)
	if err != nil {
		return nil, err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	if text == "" {
		return nil, domain.ErrExtractionEmpty
	}
	return decodeResult(text)
}
