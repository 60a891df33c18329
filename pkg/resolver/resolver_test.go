package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/huddleai/huddle/pkg/models"
)

func twoRosters() []models.Roster {
	return []models.Roster{
		{RosterID: "1", OwnerID: "u1"},
		{RosterID: "2", OwnerID: "u2"},
	}
}

func TestResolveHeadToHead(t *testing.T) {
	matchups := []models.Matchup{
		{MatchupID: "m1", RosterID: "1", Week: 3},
		{MatchupID: "m1", RosterID: "2", Week: 3},
	}

	own, opp, err := Resolve("u1", twoRosters(), matchups, nil)
	if err != nil {
		t.Fatal(err)
	}
	if own == nil || own.RosterID != "1" {
		t.Errorf("expected own roster 1, got %+v", own)
	}
	if opp == nil || opp.RosterID != "2" {
		t.Errorf("expected opponent roster 2, got %+v", opp)
	}
}

func TestResolveByeWeek(t *testing.T) {
	matchups := []models.Matchup{
		{MatchupID: "m1", RosterID: "1", Week: 3},
	}

	own, opp, err := Resolve("u1", twoRosters(), matchups, nil)
	if err != nil {
		t.Fatal(err)
	}
	if own == nil || own.RosterID != "1" {
		t.Errorf("expected own roster 1, got %+v", own)
	}
	if opp != nil {
		t.Errorf("bye week must yield no opponent, got %+v", opp)
	}
}

func TestResolveNoMatchupsAtAll(t *testing.T) {
	own, opp, err := Resolve("u1", twoRosters(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if own == nil || opp != nil {
		t.Errorf("expected own roster and nil opponent, got %+v / %+v", own, opp)
	}
}

func TestResolveRosterNotFound(t *testing.T) {
	matchups := []models.Matchup{
		{MatchupID: "m1", RosterID: "1", Week: 3},
		{MatchupID: "m1", RosterID: "2", Week: 3},
	}

	_, _, err := Resolve("u3", twoRosters(), matchups, nil)
	if !errors.Is(err, ErrRosterNotFound) {
		t.Fatalf("expected ErrRosterNotFound, got %v", err)
	}
}

func TestResolveRosterNotFoundNamesUser(t *testing.T) {
	users := []models.User{{UserID: "u3", DisplayName: "Ghost Team"}}

	_, _, err := Resolve("u3", twoRosters(), nil, users)
	if err == nil || !errors.Is(err, ErrRosterNotFound) {
		t.Fatalf("expected ErrRosterNotFound, got %v", err)
	}
	if want := "Ghost Team"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q should mention %q", err, want)
	}
}

func TestResolveOversizedGroupYieldsNoOpponent(t *testing.T) {
	rosters := append(twoRosters(), models.Roster{RosterID: "3", OwnerID: "u3"})
	matchups := []models.Matchup{
		{MatchupID: "m1", RosterID: "1", Week: 3},
		{MatchupID: "m1", RosterID: "2", Week: 3},
		{MatchupID: "m1", RosterID: "3", Week: 3},
	}

	own, opp, err := Resolve("u1", rosters, matchups, nil)
	if err != nil {
		t.Fatal(err)
	}
	if own == nil || opp != nil {
		t.Errorf("group of three must resolve to no opponent, got %+v", opp)
	}
}

func TestResolveDanglingReference(t *testing.T) {
	matchups := []models.Matchup{
		{MatchupID: "m1", RosterID: "1", Week: 3},
		{MatchupID: "m1", RosterID: "99", Week: 3},
	}

	own, _, err := Resolve("u1", twoRosters(), matchups, nil)
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if own == nil || own.RosterID != "1" {
		t.Errorf("own roster should still be resolved, got %+v", own)
	}
}

func testCatalog(n int) map[string]models.Player {
	catalog := make(map[string]models.Player, n)
	for i := 0; i < n; i++ {
		catalog[fmt.Sprintf("p%d", i)] = models.Player{
			FirstName: "Player",
			LastName:  fmt.Sprintf("%d", i),
			Position:  "RB",
			Team:      "SF",
		}
	}
	return catalog
}

func TestFormatRosterDropsUnknownIDs(t *testing.T) {
	roster := &models.Roster{
		RosterID: "1",
		Players:  []string{"p0", "ghost", "p1"},
	}

	formatted := FormatRoster(roster, testCatalog(2))
	if formatted.RosterID != "1" {
		t.Errorf("unexpected roster id: %q", formatted.RosterID)
	}
	if len(formatted.Players) != 2 {
		t.Fatalf("expected 2 resolved players, got %d", len(formatted.Players))
	}
	if formatted.Players[0].Name != "Player 0" || formatted.Players[1].Name != "Player 1" {
		t.Errorf("unexpected players: %+v", formatted.Players)
	}
	if formatted.Players[0].Status != "Active" {
		t.Errorf("empty status should default to Active, got %q", formatted.Players[0].Status)
	}
}

func TestFormatRosterNil(t *testing.T) {
	formatted := FormatRoster(nil, testCatalog(1))
	if !formatted.Empty() {
		t.Errorf("nil roster should format to empty, got %+v", formatted)
	}
}

func TestRelevantPlayersTruncation(t *testing.T) {
	ids := make([]string, 45)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
	}
	roster := &models.Roster{RosterID: "1", Players: ids}

	relevant := RelevantPlayers(roster, testCatalog(45))
	if len(relevant) != MaxRelevantPlayers {
		t.Fatalf("expected exactly %d players, got %d", MaxRelevantPlayers, len(relevant))
	}
	// Original order preserved.
	for i, p := range relevant {
		if want := fmt.Sprintf("p%d", i); p.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, p.ID)
		}
	}
}
