package analysis

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/models"
)

const (
	openAIModel       = openai.GPT4
	openAITemperature = 0.7
	openAIMaxTokens   = 3000
)

type openAIProvider struct {
	client *openai.Client
}

func newOpenAIProvider(cfg *config.Config) *openAIProvider {
	return &openAIProvider{client: openai.NewClient(cfg.APIKey)}
}

func (p *openAIProvider) Name() string { return "OpenAI GPT-4" }

func (p *openAIProvider) AnalyzeLineup(ctx context.Context, ac models.AnalysisContext) (*models.AnalysisResult, error) {
	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openAIModel,
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(ac)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai completion: empty response")
	}

	strategies, err := parseStrategies(resp.Choices[0].Message.Content)
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
