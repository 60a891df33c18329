package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddleai/huddle/pkg/analysis"
	"github.com/huddleai/huddle/pkg/analyzer"
	cachepkg "github.com/huddleai/huddle/pkg/cache/sqlite"
	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/history"
	"github.com/huddleai/huddle/pkg/models"
	"github.com/huddleai/huddle/pkg/scoring"
	"github.com/huddleai/huddle/pkg/sleeper"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configDir string
		leagueID  string
		week      int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze your lineup for a week and suggest strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if leagueID == "" {
				return fmt.Errorf("--league is required")
			}

			cfg, mgr, err := loadConfig(configDir)
			if err != nil {
				return err
			}

			client, cleanup, err := openClient(cfg, mgr)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			user, err := client.GetUser(ctx, cfg.Username)
			if err != nil {
				return fmt.Errorf("resolve user %q: %w", cfg.Username, err)
			}

			hist, err := history.New(mgr.HistoryPath())
			if err != nil {
				log.Printf("history disabled: %v", err)
				hist = nil
			}
			defer func() { _ = hist.Close() }()

			a := analyzer.New(client, analysis.NewAnalyzer(cfg), hist)

			result, ac, err := a.AnalyzeWeek(ctx, leagueID, user.UserID, week)
			if err != nil {
				return err
			}

			printAnalysis(result, ac)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.Flags().StringVar(&leagueID, "league", "", "league ID to analyze")
	cmd.Flags().IntVar(&week, "week", 0, "NFL week (0 = estimate current week)")

	return cmd
}

// openClient builds the Sleeper gateway with the cache the config asks for.
func openClient(cfg *config.Config, mgr *config.Manager) (*sleeper.Client, func(), error) {
	var cache *cachepkg.Cache
	if cfg.CacheEnabled {
		c, err := cachepkg.New(mgr.CachePath(), cfg.CacheTTL())
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		cache = c
	}

	client := sleeper.New(cfg, cache)
	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}
	return client, cleanup, nil
}

func printAnalysis(result *models.AnalysisResult, ac *models.AnalysisContext) {
	fmt.Printf("League:   %s\n", ac.LeagueName)
	fmt.Printf("Week:     %d\n", ac.Week)
	fmt.Printf("Provider: %s\n", result.Provider)
	if ac.Opponent.Empty() {
		fmt.Println("Opponent: none (bye week)")
	}
	fmt.Println()

	printProjections(ac)

	best := result.BestStrategy()
	for i, s := range result.Strategies {
		marker := ""
		if best != nil && s.Name == best.Name {
			marker = " (recommended)"
		}
		fmt.Printf("%d. %s%s\n", i+1, s.Name, marker)
		fmt.Printf("   Risk %d/10, confidence %d%%", s.RiskLevel, s.Confidence)
		if len(s.ProjectedRange) == 2 {
			fmt.Printf(", projected %.0f-%.0f pts", s.ProjectedRange[0], s.ProjectedRange[1])
		}
		fmt.Println()
		if s.Reasoning != "" {
			fmt.Printf("   %s\n", s.Reasoning)
		}
		printLineup(s.Lineup)
		if len(s.Pros) > 0 {
			fmt.Printf("   Pros: %s\n", strings.Join(s.Pros, "; "))
		}
		if len(s.Cons) > 0 {
			fmt.Printf("   Cons: %s\n", strings.Join(s.Cons, "; "))
		}
		fmt.Println()
	}
}

// printProjections lists baseline projections with start/sit labels for
// the user's roster.
func printProjections(ac *models.AnalysisContext) {
	if len(ac.Projections) == 0 {
		return
	}
	fmt.Println("Baseline projections:")
	for _, p := range ac.RelevantPlayers {
		proj, ok := ac.Projections[p.ID]
		if !ok {
			continue
		}
		score := scoring.ValueScore(p.Position, proj.Points)
		fmt.Printf("   %-24s %-4s %6.1f pts  %s\n", p.Name, p.Position, proj.Points, scoring.Recommendation(score))
	}
	fmt.Println()
}

// printLineup prints lineup slots in a stable position order.
func printLineup(lineup map[string]string) {
	order := map[string]int{
		"QB": 0, "RB1": 1, "RB2": 2, "WR1": 3, "WR2": 4,
		"TE": 5, "FLEX": 6, "K": 7, "DST": 8, "DEF": 8,
	}
	slots := make([]string, 0, len(lineup))
	for slot := range lineup {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		oi, iok := order[slots[i]]
		oj, jok := order[slots[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return slots[i] < slots[j]
	})
	for _, slot := range slots {
		fmt.Printf("   %-5s %s\n", slot, lineup[slot])
	}
}
