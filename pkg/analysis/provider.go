// Package analysis turns an assembled lineup context into strategy
// recommendations via a configurable provider.
package analysis

import (
	"context"
	"log"

	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/models"
)

// Provider generates lineup strategies from an analysis context.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() string
	// AnalyzeLineup produces strategy recommendations for the context.
	AnalyzeLineup(ctx context.Context, ac models.AnalysisContext) (*models.AnalysisResult, error)
}

// New dispatches on the configured provider name. The set is closed;
// anything unrecognized falls back to the mock provider explicitly rather
// than failing at analysis time.
func New(cfg *config.Config) Provider {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAIProvider(cfg)
	case config.ProviderAnthropic:
		return newAnthropicProvider(cfg)
	case config.ProviderMock:
		return newMockProvider()
	default:
		log.Printf("analysis: unknown provider %q, using mock", cfg.Provider)
		return newMockProvider()
	}
}

// Analyzer wraps a Provider with the runtime fallback policy: if the
// configured provider fails, the analysis still completes via the mock
// provider.
type Analyzer struct {
	provider Provider
}

// NewAnalyzer creates an Analyzer around the configured provider.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{provider: New(cfg)}
}

// NewAnalyzerWith wraps an explicit provider; tests use this.
func NewAnalyzerWith(p Provider) *Analyzer {
	return &Analyzer{provider: p}
}

// Name returns the underlying provider's name.
func (a *Analyzer) Name() string { return a.provider.Name() }

// AnalyzeLineup runs the configured provider, falling back to mock output
// on failure so the user always gets a result.
func (a *Analyzer) AnalyzeLineup(ctx context.Context, ac models.AnalysisContext) (*models.AnalysisResult, error) {
	result, err := a.provider.AnalyzeLineup(ctx, ac)
	if err == nil {
		return result, nil
	}
	if _, isMock := a.provider.(*mockProvider); isMock {
		return nil, err
	}
	log.Printf("analysis: %s failed: %v, falling back to mock", a.provider.Name(), err)
	return newMockProvider().AnalyzeLineup(ctx, ac)
}
