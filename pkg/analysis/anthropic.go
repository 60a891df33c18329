package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/models"
)

const (
	anthropicURL       = "https://api.anthropic.com/v1/messages"
	anthropicVersion   = "2023-06-01"
	anthropicModel     = "claude-3-5-sonnet-latest"
	anthropicMaxTokens = 3000
)

type anthropicProvider struct {
	apiKey     string
	httpClient *http.Client
	url        string
}

func newAnthropicProvider(cfg *config.Config) *anthropicProvider {
	return &anthropicProvider{
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 2 * cfg.Timeout()},
		url:        anthropicURL,
	}
}

func (p *anthropicProvider) Name() string { return "Anthropic Claude" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (p *anthropicProvider) AnalyzeLineup(ctx context.Context, ac models.AnalysisContext) (*models.AnalysisResult, error) {
	start := time.Now()

	payload, err := json.Marshal(anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: anthropicMaxTokens,
		System:    systemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: buildPrompt(ac)}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read anthropic response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic request: status %d: %s", resp.StatusCode, body)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(decoded.Content) == 0 {
		return nil, fmt.Errorf("anthropic request: empty response")
	}

	strategies, err := parseStrategies(decoded.Content[0].Text)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		Strategies: strategies,
		Provider:   p.Name(),
		Duration:   time.Since(start),
		CreatedAt:  time.Now().UTC(),
	}, nil
}
