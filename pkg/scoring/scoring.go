// Package scoring provides league scoring settings, baseline projections
// and start/sit value heuristics.
package scoring

import (
	"github.com/huddleai/huddle/pkg/models"
)

// standardPPR is the fallback when a league does not expose its scoring
// settings.
var standardPPR = map[string]float64{
	"passing_yards":        0.04,
	"passing_td":           4,
	"passing_int":          -2,
	"rushing_yards":        0.1,
	"rushing_td":           6,
	"receiving_yards":      0.1,
	"receiving_td":         6,
	"receptions":           1.0,
	"fumbles_lost":         -2,
	"two_point_conversion": 2,
}

// Settings returns the league's scoring settings, falling back to standard
// PPR when the league payload carries none.
func Settings(league *models.League) map[string]float64 {
	if league != nil && len(league.ScoringSettings) > 0 {
		return league.ScoringSettings
	}
	out := make(map[string]float64, len(standardPPR))
	for k, v := range standardPPR {
		out[k] = v
	}
	return out
}

// positionBaselines are weekly point baselines per position, used when no
// external projection source is configured.
var positionBaselines = map[string]float64{
	"QB":  18.0,
	"RB":  12.5,
	"WR":  11.5,
	"TE":  8.5,
	"K":   7.5,
	"DEF": 7.0,
	"DST": 7.0,
}

const projectionSource = "baseline"

// Projections estimates weekly fantasy points for the given players.
// Early-season weeks are slightly more predictable, so the baseline shades
// down as the season progresses. Players missing from the catalog are
// skipped.
func Projections(playerIDs []string, catalog map[string]models.Player, week int, season string) map[string]models.Projection {
	adjust := 0.0
	switch {
	case week <= 4:
		adjust = 1.0
	case week > 8:
		adjust = -1.0
	}

	projections := make(map[string]models.Projection, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := catalog[id]
		if !ok {
			continue
		}
		base, ok := positionBaselines[p.Position]
		if !ok {
			continue
		}
		projections[id] = models.Projection{
			Points: base + adjust,
			Source: projectionSource,
			Week:   week,
			Season: season,
		}
	}
	return projections
}

// positionMultipliers reflect positional scarcity: RBs and TEs carry more
// weight per projected point than kickers or defenses.
var positionMultipliers = map[string]float64{
	"QB":  1.0,
	"RB":  1.2,
	"WR":  1.1,
	"TE":  1.3,
	"K":   0.8,
	"DEF": 0.9,
	"DST": 0.9,
}

// ValueScore weighs projected points by positional scarcity.
func ValueScore(position string, projectedPoints float64) float64 {
	m, ok := positionMultipliers[position]
	if !ok {
		m = 1.0
	}
	return projectedPoints * m
}

// Recommendation maps a value score to a start/sit label.
func Recommendation(score float64) string {
	switch {
	case score >= 15:
		return "Must Start"
	case score >= 12:
		return "Strong Start"
	case score >= 9:
		return "Start"
	case score >= 6:
		return "Flex Consideration"
	default:
		return "Bench"
	}
}
