package models

import (
	"encoding/json"
	"strings"
)

// FlexID is an identifier that the Sleeper API serializes sometimes as a
// JSON number and sometimes as a string (roster_id, matchup_id).
type FlexID string

// UnmarshalJSON accepts both string and numeric forms. null becomes "".
func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON always emits the string form.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexID) String() string { return string(f) }

// User is a Sleeper account.
type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// LeagueSettings is the subset of league settings the analyzer cares about.
type LeagueSettings struct {
	NumTeams     int `json:"num_teams"`
	Type         int `json:"type"`
	PlayoffTeams int `json:"playoff_teams"`
}

// League is a Sleeper fantasy league.
type League struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	Status          string             `json:"status"`
	Sport           string             `json:"sport"`
	TotalRosters    int                `json:"total_rosters"`
	Settings        LeagueSettings     `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	RosterPositions []string           `json:"roster_positions"`
}

// Roster is an immutable snapshot of one team's roster in a league.
type Roster struct {
	RosterID      FlexID   `json:"roster_id"`
	OwnerID       string   `json:"owner_id"`
	LeagueID      string   `json:"league_id"`
	Players       []string `json:"players"`
	Starters      []string `json:"starters"`
	Taxi          []string `json:"taxi"`
	PracticeSquad []string `json:"practice_squad"`
}

// Matchup is one roster's entry in a week's matchup group. Records sharing
// a MatchupID in the same week form a group; in a head-to-head league the
// group has exactly two members.
type Matchup struct {
	MatchupID       FlexID  `json:"matchup_id"`
	RosterID        FlexID  `json:"roster_id"`
	Week            int     `json:"week"`
	Points          float64 `json:"points"`
	ProjectedPoints float64 `json:"projected_points"`
}

// Player is one entry in the shared NFL player catalog.
type Player struct {
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
	FantasyPositions []string `json:"fantasy_positions"`
}

// Name returns the player's display name.
func (p Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// TrendingPlayer is one entry from the trending-adds endpoint.
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}
