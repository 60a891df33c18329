package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cachepkg "github.com/huddleai/huddle/pkg/cache/sqlite"
	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/sleeper"
)

func newTrendingCmd() *cobra.Command {
	var (
		configDir string
		hours     int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending waiver-wire adds",
		// The trending endpoints need no credentials, so this command runs
		// with defaults and never prompts for the password.
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(configDir, nil)
			if err != nil {
				return err
			}
			cfg := config.Default()

			cache, err := cachepkg.New(mgr.CachePath(), cfg.CacheTTL())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer func() { _ = cache.Close() }()

			client := sleeper.New(cfg, cache)
			ctx := context.Background()

			trending, err := client.GetTrendingPlayers(ctx, hours, limit)
			if err != nil {
				return err
			}
			if len(trending) == 0 {
				fmt.Println("No trending players found.")
				return nil
			}

			catalog, err := client.GetAllPlayers(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%-25s %-4s %-4s %8s\n", "PLAYER", "POS", "TEAM", "ADDS")
			fmt.Println(strings.Repeat("-", 45))
			for _, t := range trending {
				name, pos, team := t.PlayerID, "?", "?"
				if p, ok := catalog[t.PlayerID]; ok {
					name, pos, team = p.Name(), p.Position, p.Team
				}
				fmt.Printf("%-25s %-4s %-4s %8d\n", name, pos, team, t.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.Flags().IntVar(&hours, "hours", 24, "lookback window in hours")
	cmd.Flags().IntVar(&limit, "limit", 25, "max players to show")

	return cmd
}
