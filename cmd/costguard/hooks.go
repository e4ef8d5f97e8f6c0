package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/costguard/costguard/pkg/aggregator"
	"github.com/costguard/costguard/pkg/ledger"
	"github.com/costguard/costguard/pkg/models"
	"github.com/costguard/costguard/pkg/parser"
	"github.com/costguard/costguard/pkg/report"
	"github.com/costguard/costguard/pkg/state"
	"github.com/costguard/costguard/pkg/threshold"
)

func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Hook entry points invoked by Claude Code",
	}
	cmd.AddCommand(newSessionStartCmd(), newStopCmd())
	return cmd
}

// newSessionStartCmd checks spend at session start and emits a warning
// when a budget threshold is newly crossed. It always exits 0: nothing
// on the data path may block a session from starting.
func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session-start",
		Short: "SessionStart hook: warn once per newly crossed budget threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}
			drainStdin()

			cfg := loadConfig(dir)
			if !cfg.Enabled || !cfg.ShowSessionStartWarnings {
				return nil
			}

			now := time.Now()
			period := models.PeriodOf(now)
			summary := aggregator.Summarize(parser.ParseAll(projectsDir(dir)), now)

			store := state.New(statePath(dir))
			prior := store.Load(period)
			res := threshold.Evaluate(summary.TotalUSD, cfg, prior, period)
			if len(res.Crossed) == 0 {
				return nil
			}

			if err := store.Save(res.State); err != nil {
				// A failed save means this warning may repeat next run.
				// That beats blocking the session.
				log.Warn().Err(err).Msg("could not persist warning state")
			}

			emitEnvelope("SessionStart", report.Warning(res.Crossed, summary, cfg))
			return nil
		},
	}
}

// newStopCmd prints the spending summary at session end, touches the
// state's last-check timestamp, and records a spend snapshot in the
// ledger. All of it is best effort; the hook always exits 0.
func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop hook: show the monthly spending summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}
			drainStdin()

			cfg := loadConfig(dir)
			if !cfg.Enabled {
				return nil
			}

			now := time.Now()
			period := models.PeriodOf(now)
			summary := aggregator.Summarize(parser.ParseAll(projectsDir(dir)), now)

			if err := state.New(statePath(dir)).Touch(period, now); err != nil {
				log.Warn().Err(err).Msg("could not update warning state")
			}
			recordSnapshot(dir, summary, now)

			if !cfg.ShowStopSummaries {
				return nil
			}
			emitEnvelope("Stop", report.StopSummary(summary, cfg))
			return nil
		},
	}
}

// recordSnapshot appends the current spend to the history ledger.
func recordSnapshot(dir string, summary models.CostSummary, now time.Time) {
	l, err := ledger.New(ledgerPath(dir))
	if err != nil {
		log.Warn().Err(err).Msg("could not open spend ledger")
		return
	}
	defer l.Close()

	snap := models.Snapshot{
		Period:     summary.Period.String(),
		CapturedAt: now,
		TotalUSD:   summary.TotalUSD,
		EventCount: summary.APICalls,
	}
	if err := l.Record(context.Background(), snap); err != nil {
		log.Warn().Err(err).Msg("could not record spend snapshot")
	}
}

func emitEnvelope(eventName, message string) {
	envelope, err := report.HookEnvelope(eventName, message)
	if err != nil {
		log.Warn().Err(err).Msg("could not encode hook output")
		return
	}
	fmt.Println(envelope)
}

// drainStdin consumes the hook payload so the host never blocks on a
// full pipe. The payload itself carries nothing this system needs.
func drainStdin() {
	_, _ = io.Copy(io.Discard, os.Stdin)
}
