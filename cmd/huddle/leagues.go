package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLeaguesCmd() *cobra.Command {
	var (
		configDir string
		season    string
	)

	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "List your leagues for a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgr, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			if season == "" {
				season = cfg.Season
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

			leagues, err := client.GetLeaguesForUser(ctx, user.UserID, season)
			if err != nil {
				return err
			}
			if len(leagues) == 0 {
				fmt.Printf("No leagues found for %s in %s.\n", cfg.Username, season)
				return nil
			}

			fmt.Printf("%-20s %-30s %-10s %6s\n", "LEAGUE ID", "NAME", "STATUS", "TEAMS")
			fmt.Println(strings.Repeat("-", 70))
			for _, l := range leagues {
				fmt.Printf("%-20s %-30s %-10s %6d\n", l.LeagueID, l.Name, l.Status, l.TotalRosters)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.Flags().StringVar(&season, "season", "", "season year (default from config)")

	return cmd
}
