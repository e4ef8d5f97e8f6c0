package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/costguard/costguard/pkg/aggregator"
	"github.com/costguard/costguard/pkg/parser"
	"github.com/costguard/costguard/pkg/report"
)

// newStatusCmd recomputes and prints the full monthly breakdown.
// Manual checks never consult or mutate warning state; only the
// automatic hook paths deduplicate.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current month's spending breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}

			cfg := loadConfig(dir)
			now := time.Now()
			summary := aggregator.Summarize(parser.ParseAll(projectsDir(dir)), now)

			fmt.Print(report.Status(summary, cfg, now))
			return nil
		},
	}
}
