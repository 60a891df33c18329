package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/history"
	"github.com/huddleai/huddle/pkg/models"
)

func newHistoryCmd() *cobra.Command {
	var (
		configDir string
		leagueID  string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past analysis runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(configDir, nil)
			if err != nil {
				return err
			}

			hist, err := history.New(mgr.HistoryPath())
			if err != nil {
				return err
			}
			defer func() { _ = hist.Close() }()

			ctx := context.Background()
			var entries []models.HistoryEntry
			if leagueID != "" {
				entries, err = hist.ForLeague(ctx, leagueID, limit)
			} else {
				entries, err = hist.Recent(ctx, limit)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No analysis history found.")
				return nil
			}

			fmt.Printf("%-20s %-25s %4s %-18s %-20s %10s\n",
				"TIME", "LEAGUE", "WEEK", "PROVIDER", "BEST STRATEGY", "CONFIDENCE")
			fmt.Println(strings.Repeat("-", 103))
			for _, e := range entries {
				name := e.LeagueName
				if name == "" {
					name = e.LeagueID
				}
				fmt.Printf("%-20s %-25s %4d %-18s %-20s %9d%%\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), name, e.Week,
					e.Provider, e.BestStrategy, e.BestConfidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.Flags().StringVar(&leagueID, "league", "", "filter by league ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "max entries to show")

	return cmd
}
