// Package analyzer orchestrates one analysis run: fetch league data,
// resolve the matchup, assemble the provider context, and record the
// outcome.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/huddleai/huddle/pkg/analysis"
	"github.com/huddleai/huddle/pkg/history"
	"github.com/huddleai/huddle/pkg/models"
	"github.com/huddleai/huddle/pkg/resolver"
	"github.com/huddleai/huddle/pkg/scoring"
)

// API is the subset of the Sleeper gateway the analyzer uses.
type API interface {
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error)
	GetAllPlayers(ctx context.Context) (map[string]models.Player, error)
}

// WeekFn maps a point in time to an NFL week number.
type WeekFn func(now time.Time) int

// Analyzer wires the gateway, the analysis provider, and the history log.
type Analyzer struct {
	api      API
	provider *analysis.Analyzer
	hist     *history.Log
	weekFn   WeekFn
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWeekFn overrides the automatic week estimation.
func WithWeekFn(fn WeekFn) Option {
	return func(a *Analyzer) { a.weekFn = fn }
}

// New creates an Analyzer. hist may be nil to disable history recording.
func New(api API, provider *analysis.Analyzer, hist *history.Log, opts ...Option) *Analyzer {
	a := &Analyzer{
		api:      api,
		provider: provider,
		hist:     hist,
		weekFn:   EstimateWeek,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResolveWeek returns week unchanged when positive, otherwise the
// estimated current week clamped to the regular season range.
func (a *Analyzer) ResolveWeek(week int) int {
	if week > 0 {
		return week
	}
	w := a.weekFn(time.Now())
	if w < 1 {
		w = 1
	}
	if w > 18 {
		w = 18
	}
	return w
}

// BuildContext fetches everything a provider needs for one analysis run.
// A week of 0 or less means "estimate the current week".
func (a *Analyzer) BuildContext(ctx context.Context, leagueID, userID string, week int) (*models.AnalysisContext, error) {
	week = a.ResolveWeek(week)

	league, err := a.api.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch league: %w", err)
	}
	rosters, err := a.api.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch rosters: %w", err)
	}
	users, err := a.api.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch league users: %w", err)
	}
	matchups, err := a.api.GetMatchups(ctx, leagueID, week)
	if err != nil {
		return nil, fmt.Errorf("fetch matchups: %w", err)
	}
	catalog, err := a.api.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch player catalog: %w", err)
	}

	own, opponent, err := resolver.Resolve(userID, rosters, matchups, users)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisContext{
		Week:            week,
		LeagueName:      league.Name,
		Roster:          resolver.FormatRoster(own, catalog),
		Opponent:        resolver.FormatRoster(opponent, catalog),
		Scoring:         scoring.Settings(league),
		RelevantPlayers: resolver.RelevantPlayers(own, catalog),
		Projections:     scoring.Projections(own.Players, catalog, week, league.Season),
		LeagueSettings:  league.Settings,
	}, nil
}

// AnalyzeWeek runs a full analysis and records it in the history log.
// History failures are logged, not returned; the analysis result stands on
// its own.
func (a *Analyzer) AnalyzeWeek(ctx context.Context, leagueID, userID string, week int) (*models.AnalysisResult, *models.AnalysisContext, error) {
	ac, err := a.BuildContext(ctx, leagueID, userID, week)
	if err != nil {
		return nil, nil, err
	}

	result, err := a.provider.AnalyzeLineup(ctx, *ac)
	if err != nil {
		return nil, ac, err
	}

	entry := models.HistoryEntry{
		LeagueID:   leagueID,
		LeagueName: ac.LeagueName,
		Week:       ac.Week,
		Provider:   result.Provider,
		Strategies: len(result.Strategies),
		DurationMs: result.Duration.Milliseconds(),
		CreatedAt:  result.CreatedAt,
	}
	if best := result.BestStrategy(); best != nil {
		entry.BestStrategy = best.Name
		entry.BestConfidence = best.Confidence
	}
	if err := a.hist.Record(ctx, entry); err != nil {
		log.Printf("analyzer: record history: %v", err)
	}

	return result, ac, nil
}

// EstimateWeek approximates the NFL week from the calendar. The season is
// taken to start in early September with four weeks per month; 0 means
// off-season. Real schedules shift by a few days, which is close enough
// for a default the user can override.
func EstimateWeek(now time.Time) int {
	month := int(now.Month())
	switch {
	case month < 9:
		return 0
	case month == 9:
		w := (now.Day()-1)/7 + 1
		if w < 1 {
			w = 1
		}
		return w
	default:
		w := (month-9)*4 + (now.Day()-1)/7 + 1
		if w > 18 {
			w = 18
		}
		return w
	}
}
