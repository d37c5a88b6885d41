package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/hashicorp/go-retryablehttp"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini calls the Google Generative Language API.
type Gemini struct {
	apiKey string
	model  string
	client *retryablehttp.Client
}

// NewGemini creates a Gemini provider. Requires GEMINI_API_KEY.
func NewGemini(model string) (*Gemini, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, &authError{message: "GEMINI_API_KEY environment variable is not set"}
	}
	return &Gemini{apiKey: key, model: model, client: newHTTPClient()}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: req.UserPrompt}}}},
	}
	if req.MaxTokens > 0 {
		body.GenerationConfig = &geminiGenerationConfig{MaxOutputTokens: req.MaxTokens}
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		geminiBaseURL, g.model, url.QueryEscape(g.apiKey))

	data, err := postJSON(ctx, g.client, endpoint, nil, body)
	if err != nil {
		return ReviewResponse{}, err
	}

	var result geminiResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return ReviewResponse{}, fmt.Errorf("parsing response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return ReviewResponse{}, fmt.Errorf("empty response from gemini")
	}

	var content string
	for _, part := range result.Candidates[0].Content.Parts {
		content += part.Text
	}
	return ReviewResponse{
		Content:    content,
		TokensUsed: result.UsageMetadata.TotalTokenCount,
	}, nil
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}
