package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/models"
)

func testContext() models.AnalysisContext {
	return models.AnalysisContext{
		Week:       3,
		LeagueName: "Test League",
		Roster: models.FormattedRoster{
			RosterID: "1",
			Players: []models.RosterPlayer{
				{ID: "p1", Name: "Josh Allen", Position: "QB"},
				{ID: "p2", Name: "Bijan Robinson", Position: "RB"},
				{ID: "p3", Name: "Jahmyr Gibbs", Position: "RB"},
				{ID: "p4", Name: "Justin Jefferson", Position: "WR"},
			},
		},
		Scoring: map[string]float64{"receptions": 1.0},
	}
}

func TestNewDispatch(t *testing.T) {
	cases := []struct {
		provider string
		wantName string
	}{
		{config.ProviderOpenAI, "OpenAI GPT-4"},
		{config.ProviderAnthropic, "Anthropic Claude"},
		{config.ProviderMock, "Mock Provider"},
		{"grok", "Mock Provider"}, // unknown falls back to mock
	}

	for _, tc := range cases {
		cfg := config.Default()
		cfg.Provider = tc.provider
		cfg.APIKey = "key"

		if got := New(cfg).Name(); got != tc.wantName {
			t.Errorf("provider %q: expected %q, got %q", tc.provider, tc.wantName, got)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(testContext())

	for _, want := range []string{"WEEK: 3", "Josh Allen", "MY ROSTER", "Format as JSON"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestParseStrategies(t *testing.T) {
	response := `Here are my recommendations:
{
  "strategies": [
    {
      "name": "Safe Floor",
      "lineup": {"QB": "Josh Allen"},
      "projected_range": [100, 120],
      "reasoning": "steady",
      "pros": ["a", "b", "c"],
      "cons": ["x", "y", "z"],
      "risk_level": 3,
      "confidence": 80
    }
  ]
}
Good luck this week!`

	strategies, err := parseStrategies(response)
	if err != nil {
		t.Fatal(err)
	}
	if len(strategies) != 1 {
		t.Fatalf("expected 1 strategy, got %d", len(strategies))
	}
	s := strategies[0]
	if s.Name != "Safe Floor" || s.RiskLevel != 3 || s.Confidence != 80 {
		t.Errorf("unexpected strategy: %+v", s)
	}
	if s.Lineup["QB"] != "Josh Allen" {
		t.Errorf("unexpected lineup: %+v", s.Lineup)
	}
}

func TestParseStrategiesDefaults(t *testing.T) {
	strategies, err := parseStrategies(`{"strategies":[{"lineup":{}}]}`)
	if err != nil {
		t.Fatal(err)
	}
	s := strategies[0]
	if s.Name != "Unknown Strategy" || s.RiskLevel != 5 || s.Confidence != 50 {
		t.Errorf("expected defaults applied, got %+v", s)
	}
}

func TestParseStrategiesNoJSON(t *testing.T) {
	_, err := parseStrategies("I cannot help with that.")
	if !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}
}

func TestMockRespectsRoster(t *testing.T) {
	result, err := newMockProvider().AnalyzeLineup(context.Background(), testContext())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Strategies) != 3 {
		t.Fatalf("expected 3 strategies, got %d", len(result.Strategies))
	}

	onRoster := map[string]bool{
		"Josh Allen": true, "Bijan Robinson": true,
		"Jahmyr Gibbs": true, "Justin Jefferson": true,
	}
	for _, s := range result.Strategies {
		for slot, name := range s.Lineup {
			if !onRoster[name] {
				t.Errorf("strategy %q slot %s uses %q, not on roster", s.Name, slot, name)
			}
		}
	}
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) AnalyzeLineup(context.Context, models.AnalysisContext) (*models.AnalysisResult, error) {
	return nil, errors.New("upstream down")
}

func TestAnalyzerFallsBackToMock(t *testing.T) {
	a := NewAnalyzerWith(failingProvider{})

	result, err := a.AnalyzeLineup(context.Background(), testContext())
	if err != nil {
		t.Fatal(err)
	}
	if result.Provider != "Mock Provider" {
		t.Errorf("expected mock fallback, got %q", result.Provider)
	}
}

func TestBestStrategy(t *testing.T) {
	result, err := newMockProvider().AnalyzeLineup(context.Background(), testContext())
	if err != nil {
		t.Fatal(err)
	}
	best := result.BestStrategy()
	if best == nil || best.Name != "Safe Floor Play" {
		t.Errorf("expected highest-confidence strategy, got %+v", best)
	}
}
