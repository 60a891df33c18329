package models

import "time"

// HistoryEntry is one recorded analysis run.
type HistoryEntry struct {
	ID             int64     `json:"id"`
	LeagueID       string    `json:"league_id"`
	LeagueName     string    `json:"league_name,omitempty"`
	Week           int       `json:"week"`
	Provider       string    `json:"provider"`
	Strategies     int       `json:"strategies"`
	BestStrategy   string    `json:"best_strategy,omitempty"`
	BestConfidence int       `json:"best_confidence,omitempty"`
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
