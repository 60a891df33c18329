package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "huddle",
		Short:   "AI-assisted lineup analyzer for Sleeper fantasy football leagues",
		Version: version,
	}

	root.AddCommand(
		newConfigCmd(),
		newAnalyzeCmd(),
		newLeaguesCmd(),
		newTrendingCmd(),
		newCacheCmd(),
		newHistoryCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
