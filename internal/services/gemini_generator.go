package services

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

// contentGenerator is the slice of the Gemini client the assistant
// needs. Kept narrow so tests can substitute a fake.
type contentGenerator interface {
	GenerateText(ctx context.Context, systemInstruction, contents string) (string, error)
	GenerateWithImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// GeminiGenerator is a thin wrapper around the official genai client.
// It only focuses on the API call itself; policy (apology strings,
// fail-open) lives in the assistant service.
type GeminiGenerator struct {
	cli   *genai.Client
	model string
}

// NewGeminiGenerator builds a client for the Gemini API backend.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{cli: cli, model: model}, nil
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, systemInstruction, contents string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: contents}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp)
}

func (g *GeminiGenerator) GenerateWithImage(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
			{Text: prompt},
		}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
