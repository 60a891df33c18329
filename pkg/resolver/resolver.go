// Package resolver reconstructs the "user vs. opponent" relationship from
// independently fetched roster and matchup collections.
package resolver

import (
	"errors"
	"fmt"

	"github.com/huddleai/huddle/pkg/models"
)

// Resolution errors.
var (
	// ErrRosterNotFound means the user owns no roster in the league; the
	// analysis cannot proceed.
	ErrRosterNotFound = errors.New("roster not found for user")
	// ErrDanglingReference means a matchup points at a roster the league
	// does not contain; the upstream data is inconsistent.
	ErrDanglingReference = errors.New("matchup references unknown roster")
)

// MaxRelevantPlayers bounds the relevant-players projection handed to the
// analysis provider. Truncation is a deliberate policy to cap payload
// size, not an accident.
const MaxRelevantPlayers = 30

// Resolve finds the requesting user's roster and the week's opponent
// roster. A missing opponent (bye week, or a matchup group that does not
// have exactly two members) is a normal state returned as a nil opponent,
// never an error.
func Resolve(userID string, rosters []models.Roster, matchups []models.Matchup, users []models.User) (*models.Roster, *models.Roster, error) {
	var own *models.Roster
	for i := range rosters {
		if rosters[i].OwnerID == userID {
			own = &rosters[i]
			break
		}
	}
	if own == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrRosterNotFound, describeUser(userID, users))
	}

	var ownMatchup *models.Matchup
	for i := range matchups {
		if matchups[i].RosterID == own.RosterID {
			ownMatchup = &matchups[i]
			break
		}
	}
	if ownMatchup == nil {
		// Bye week.
		return own, nil, nil
	}

	// The matchup group is every record sharing the matchup id. Only a
	// group of exactly two has a well-defined opponent; anything else
	// (malformed data, non-head-to-head formats) resolves to no opponent.
	var opponentID models.FlexID
	groupSize := 0
	for i := range matchups {
		if matchups[i].MatchupID != ownMatchup.MatchupID {
			continue
		}
		groupSize++
		if matchups[i].RosterID != own.RosterID {
			opponentID = matchups[i].RosterID
		}
	}
	if groupSize != 2 || opponentID == "" {
		return own, nil, nil
	}

	for i := range rosters {
		if rosters[i].RosterID == opponentID {
			return own, &rosters[i], nil
		}
	}
	return own, nil, fmt.Errorf("%w: roster %s", ErrDanglingReference, opponentID)
}

// describeUser prefers a display name for error messages when the league
// users collection carries one.
func describeUser(userID string, users []models.User) string {
	for _, u := range users {
		if u.UserID == userID {
			if u.DisplayName != "" {
				return fmt.Sprintf("%s (%s)", u.DisplayName, userID)
			}
			break
		}
	}
	return userID
}

// FormatRoster joins a roster's player ids against the player catalog.
// Unknown ids are dropped silently; catalog staleness is expected.
func FormatRoster(roster *models.Roster, catalog map[string]models.Player) models.FormattedRoster {
	if roster == nil {
		return models.FormattedRoster{}
	}

	formatted := models.FormattedRoster{RosterID: roster.RosterID.String()}
	for _, id := range roster.Players {
		p, ok := catalog[id]
		if !ok {
			continue
		}
		formatted.Players = append(formatted.Players, models.RosterPlayer{
			ID:       id,
			Name:     p.Name(),
			Position: p.Position,
			Team:     p.Team,
			Status:   orActive(p.Status),
		})
	}
	return formatted
}

// RelevantPlayers builds the detailed player projection for analysis,
// truncated to MaxRelevantPlayers entries in original roster order.
func RelevantPlayers(roster *models.Roster, catalog map[string]models.Player) []models.RosterPlayer {
	if roster == nil {
		return nil
	}

	var relevant []models.RosterPlayer
	for _, id := range roster.Players {
		p, ok := catalog[id]
		if !ok {
			continue
		}
		relevant = append(relevant, models.RosterPlayer{
			ID:               id,
			Name:             p.Name(),
			Position:         p.Position,
			Team:             p.Team,
			Status:           orActive(p.Status),
			InjuryStatus:     p.InjuryStatus,
			FantasyPositions: p.FantasyPositions,
		})
		if len(relevant) == MaxRelevantPlayers {
			break
		}
	}
	return relevant
}

func orActive(status string) string {
	if status == "" {
		return "Active"
	}
	return status
}
