package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cachepkg "github.com/huddleai/huddle/pkg/cache/sqlite"
	"github.com/huddleai/huddle/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	// The cache database is not encrypted, so these commands never prompt
	// for the password.
	openCache := func() (*cachepkg.Cache, error) {
		mgr, err := config.NewManager(configDir, nil)
		if err != nil {
			return nil, err
		}
		return cachepkg.New(mgr.CachePath(), config.Default().CacheTTL())
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			stats, err := c.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("Entries: %d\nHits:    %d\nMisses:  %d\nSize:    %d bytes\n",
				stats.Entries, stats.Hits, stats.Misses, stats.SizeBytes)
			return nil
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			if err := c.Clear(expiredOnly); err != nil {
				return err
			}
			if expiredOnly {
				fmt.Println("Expired cache entries cleared.")
			} else {
				fmt.Println("All cache entries cleared.")
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired", false, "only clear expired entries")

	cmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "", "configuration directory (default ~/.huddle)")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}
