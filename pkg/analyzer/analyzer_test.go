package analyzer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huddleai/huddle/pkg/analysis"
	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/history"
	"github.com/huddleai/huddle/pkg/models"
)

type fakeAPI struct {
	league   models.League
	rosters  []models.Roster
	users    []models.User
	matchups []models.Matchup
	catalog  map[string]models.Player

	matchupWeek int
}

func (f *fakeAPI) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	l := f.league
	return &l, nil
}

func (f *fakeAPI) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	return f.rosters, nil
}

func (f *fakeAPI) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeAPI) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error) {
	f.matchupWeek = week
	return f.matchups, nil
}

func (f *fakeAPI) GetAllPlayers(ctx context.Context) (map[string]models.Player, error) {
	return f.catalog, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		league: models.League{
			LeagueID: "league-1",
			Name:     "Test League",
			Season:   "2025",
			Settings: models.LeagueSettings{NumTeams: 2},
		},
		rosters: []models.Roster{
			{RosterID: "1", OwnerID: "u1", Players: []string{"p1", "p2"}},
			{RosterID: "2", OwnerID: "u2", Players: []string{"p3"}},
		},
		users: []models.User{
			{UserID: "u1", DisplayName: "Team One"},
			{UserID: "u2", DisplayName: "Team Two"},
		},
		matchups: []models.Matchup{
			{MatchupID: "1", RosterID: "1"},
			{MatchupID: "1", RosterID: "2"},
		},
		catalog: map[string]models.Player{
			"p1": {FirstName: "Josh", LastName: "Allen", Position: "QB", Team: "BUF"},
			"p2": {FirstName: "Bijan", LastName: "Robinson", Position: "RB", Team: "ATL"},
			"p3": {FirstName: "Justin", LastName: "Jefferson", Position: "WR", Team: "MIN"},
		},
	}
}

func mockAnalyzer() *analysis.Analyzer {
	cfg := config.Default()
	cfg.Provider = config.ProviderMock
	return analysis.NewAnalyzer(cfg)
}

func TestBuildContext(t *testing.T) {
	api := newFakeAPI()
	a := New(api, mockAnalyzer(), nil)

	ac, err := a.BuildContext(context.Background(), "league-1", "u1", 3)
	if err != nil {
		t.Fatal(err)
	}

	if ac.Week != 3 || api.matchupWeek != 3 {
		t.Errorf("expected week 3, got context %d, fetch %d", ac.Week, api.matchupWeek)
	}
	if ac.LeagueName != "Test League" {
		t.Errorf("unexpected league name %q", ac.LeagueName)
	}
	if len(ac.Roster.Players) != 2 {
		t.Errorf("expected 2 roster players, got %d", len(ac.Roster.Players))
	}
	if len(ac.Opponent.Players) != 1 || ac.Opponent.Players[0].Name != "Justin Jefferson" {
		t.Errorf("unexpected opponent: %+v", ac.Opponent)
	}
	if len(ac.Projections) != 2 {
		t.Errorf("expected projections for own roster only, got %d", len(ac.Projections))
	}
	if ac.Scoring["receptions"] != 1.0 {
		t.Errorf("expected PPR fallback scoring, got %v", ac.Scoring["receptions"])
	}
}

func TestBuildContextByeWeek(t *testing.T) {
	api := newFakeAPI()
	api.matchups = nil
	a := New(api, mockAnalyzer(), nil)

	ac, err := a.BuildContext(context.Background(), "league-1", "u1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !ac.Opponent.Empty() {
		t.Errorf("expected empty opponent on bye, got %+v", ac.Opponent)
	}
}

func TestBuildContextAutoWeek(t *testing.T) {
	api := newFakeAPI()
	fixed := func(time.Time) int { return 7 }
	a := New(api, mockAnalyzer(), nil, WithWeekFn(fixed))

	ac, err := a.BuildContext(context.Background(), "league-1", "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if ac.Week != 7 {
		t.Errorf("expected estimated week 7, got %d", ac.Week)
	}
}

func TestResolveWeekClamps(t *testing.T) {
	cases := []struct {
		estimated int
		want      int
	}{
		{0, 1}, // off-season
		{25, 18},
		{10, 10},
	}
	for _, tc := range cases {
		a := New(newFakeAPI(), mockAnalyzer(), nil, WithWeekFn(func(time.Time) int { return tc.estimated }))
		if got := a.ResolveWeek(0); got != tc.want {
			t.Errorf("estimate %d: expected %d, got %d", tc.estimated, tc.want, got)
		}
	}
}

func TestAnalyzeWeekRecordsHistory(t *testing.T) {
	hist, err := history.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer hist.Close()

	a := New(newFakeAPI(), mockAnalyzer(), hist)

	result, ac, err := a.AnalyzeWeek(context.Background(), "league-1", "u1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if result == nil || ac == nil {
		t.Fatal("expected result and context")
	}
	if len(result.Strategies) != 3 {
		t.Errorf("expected 3 strategies, got %d", len(result.Strategies))
	}

	entries, err := hist.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	e := entries[0]
	if e.LeagueID != "league-1" || e.Week != 3 || e.Strategies != 3 {
		t.Errorf("unexpected history entry: %+v", e)
	}
	if e.BestStrategy == "" || e.BestConfidence == 0 {
		t.Errorf("expected best strategy recorded, got %+v", e)
	}
}

func TestAnalyzeWeekNilHistory(t *testing.T) {
	a := New(newFakeAPI(), mockAnalyzer(), nil)

	if _, _, err := a.AnalyzeWeek(context.Background(), "league-1", "u1", 3); err != nil {
		t.Fatalf("expected nil history to be tolerated: %v", err)
	}
}

func TestEstimateWeek(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-06-15", 0}, // off-season
		{"2025-09-01", 1},
		{"2025-09-10", 2},
		{"2025-09-30", 5},
		{"2025-10-15", 7},
		{"2025-12-29", 17},
	}
	for _, tc := range cases {
		now, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := EstimateWeek(now); got != tc.want {
			t.Errorf("%s: expected week %d, got %d", tc.date, tc.want, got)
		}
	}
}
