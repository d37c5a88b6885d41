package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

const defaultOllamaHost = "http://localhost:11434"

// Ollama calls a local Ollama (or LM Studio compatible) server. No credential
// is required; OLLAMA_HOST overrides the default endpoint.
type Ollama struct {
	host   string
	model  string
	client *retryablehttp.Client
}

// NewOllama creates an Ollama provider.
func NewOllama(model string) (*Ollama, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = defaultOllamaHost
	}
	return &Ollama{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: newHTTPClient(),
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	body := ollamaRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	data, err := postJSON(ctx, o.client, o.host+"/api/chat", nil, body)
	if err != nil {
		return ReviewResponse{}, err
	}

	var result ollamaResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return ReviewResponse{}, fmt.Errorf("parsing response: %w", err)
	}
	return ReviewResponse{
		Content:    result.Message.Content,
		TokensUsed: result.PromptEvalCount + result.EvalCount,
	}, nil
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Stream   bool            `json:"stream"`
	Messages []ollamaMessage `json:"messages"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaResponse struct {
	Message         ollamaMessage `json:"message"`
	PromptEvalCount int           `json:"prompt_eval_count"`
	EvalCount       int           `json:"eval_count"`
}
