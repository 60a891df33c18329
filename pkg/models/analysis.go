package models

import "time"

// RosterPlayer is a catalog-joined player entry as handed to the analysis
// provider.
type RosterPlayer struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status,omitempty"`
	FantasyPositions []string `json:"fantasy_positions,omitempty"`
}

// FormattedRoster is a roster with player ids resolved against the catalog.
// A zero FormattedRoster means "no roster" (e.g. bye week opponent).
type FormattedRoster struct {
	RosterID string         `json:"roster_id"`
	Players  []RosterPlayer `json:"players"`
}

// Empty reports whether the roster carries no data.
func (r FormattedRoster) Empty() bool {
	return r.RosterID == "" && len(r.Players) == 0
}

// Projection is an estimated fantasy point projection for one player.
type Projection struct {
	Points float64 `json:"projected_points"`
	Source string  `json:"source"`
	Week   int     `json:"week"`
	Season string  `json:"season"`
}

// AnalysisContext is the read-only aggregate handed to an analysis
// provider. RelevantPlayers is capped; see resolver.MaxRelevantPlayers.
type AnalysisContext struct {
	Week            int                   `json:"week"`
	LeagueName      string                `json:"league_name"`
	Roster          FormattedRoster       `json:"roster"`
	Opponent        FormattedRoster       `json:"opponent"`
	Scoring         map[string]float64    `json:"scoring"`
	RelevantPlayers []RosterPlayer        `json:"players"`
	Projections     map[string]Projection `json:"projections"`
	LeagueSettings  LeagueSettings        `json:"league_settings"`
}

// Strategy is one lineup recommendation returned by a provider.
type Strategy struct {
	Name           string            `json:"name"`
	Lineup         map[string]string `json:"lineup"`
	ProjectedRange []float64         `json:"projected_range"`
	Reasoning      string            `json:"reasoning"`
	Pros           []string          `json:"pros"`
	Cons           []string          `json:"cons"`
	RiskLevel      int               `json:"risk_level"`
	Confidence     int               `json:"confidence"`
}

// AnalysisResult is the complete output of one analysis run.
type AnalysisResult struct {
	Strategies []Strategy    `json:"strategies"`
	Provider   string        `json:"provider"`
	Duration   time.Duration `json:"duration"`
	CreatedAt  time.Time     `json:"created_at"`
}

// BestStrategy returns the strategy with the highest confidence, or nil if
// the result holds none.
func (r *AnalysisResult) BestStrategy() *Strategy {
	if r == nil || len(r.Strategies) == 0 {
		return nil
	}
	best := &r.Strategies[0]
	for i := range r.Strategies[1:] {
		if r.Strategies[i+1].Confidence > best.Confidence {
			best = &r.Strategies[i+1]
		}
	}
	return best
}
