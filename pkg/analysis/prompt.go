package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huddleai/huddle/pkg/models"
)

// systemPrompt frames every hosted-provider request.
const systemPrompt = "You are an expert fantasy football analyst with deep knowledge of NFL players, matchups, and strategy."

// ErrNoJSON means the provider's response contained no JSON object to
// parse.
var ErrNoJSON = errors.New("no JSON found in provider response")

// buildPrompt renders the analysis context into the provider prompt. The
// model may only recommend players present on the user's roster, which the
// prompt states twice because providers routinely ignore it once.
func buildPrompt(ac models.AnalysisContext) string {
	roster, _ := json.MarshalIndent(ac.Roster, "", "  ")
	opponent, _ := json.MarshalIndent(ac.Opponent, "", "  ")
	scoring, _ := json.MarshalIndent(ac.Scoring, "", "  ")
	players, _ := json.MarshalIndent(ac.RelevantPlayers, "", "  ")
	projections, _ := json.MarshalIndent(ac.Projections, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this fantasy football lineup situation and provide 3 optimal lineup strategies.\n\n")
	fmt.Fprintf(&b, "IMPORTANT: You can ONLY use players that are listed in \"MY ROSTER\". Do NOT recommend players that are not on the roster.\n\n")
	fmt.Fprintf(&b, "WEEK: %d\n", ac.Week)
	if ac.LeagueName != "" {
		fmt.Fprintf(&b, "LEAGUE: %s\n", ac.LeagueName)
	}
	fmt.Fprintf(&b, "\nMY ROSTER (ONLY USE THESE PLAYERS):\n%s\n", roster)
	fmt.Fprintf(&b, "\nOPPONENT'S PROJECTED LINEUP:\n%s\n", opponent)
	fmt.Fprintf(&b, "\nSCORING SETTINGS:\n%s\n", scoring)
	fmt.Fprintf(&b, "\nROSTER PLAYER DETAILS:\n%s\n", players)
	fmt.Fprintf(&b, "\nPLAYER PROJECTIONS (Week %d):\n%s\n", ac.Week, projections)
	b.WriteString(`
Provide 3 different lineup strategies using ONLY players from your roster:
1. Safe Floor (minimize risk)
2. High Ceiling (maximum upside)
3. Balanced (mix of both)

For each strategy include:
- Starting lineup by position (ONLY use players from your roster)
- Projected point range
- Key reasoning
- 3 pros and 3 cons
- Risk level (1-10)
- Confidence (0-100%)

Format as JSON with this structure:
{
  "strategies": [
    {
      "name": "Strategy Name",
      "lineup": {"QB": "Player Name", "RB1": "Player Name"},
      "projected_range": [100, 120],
      "reasoning": "Explanation",
      "pros": ["pro1", "pro2", "pro3"],
      "cons": ["con1", "con2", "con3"],
      "risk_level": 5,
      "confidence": 75
    }
  ]
}
`)
	return b.String()
}

// parseStrategies extracts the JSON object embedded in a provider response
// (models often wrap it in prose) and decodes the strategies.
func parseStrategies(text string) ([]models.Strategy, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSON
	}

	var payload struct {
		Strategies []models.Strategy `json:"strategies"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("parse provider response: %w", err)
	}

	for i := range payload.Strategies {
		s := &payload.Strategies[i]
		if s.Name == "" {
			s.Name = "Unknown Strategy"
		}
		if s.RiskLevel == 0 {
			s.RiskLevel = 5
		}
		if s.Confidence == 0 {
			s.Confidence = 50
		}
	}
	return payload.Strategies, nil
}
