package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/costguard/costguard/pkg/ledger"
	"github.com/costguard/costguard/pkg/models"
)

// newHistoryCmd lists spend snapshots recorded by the stop hook.
func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		period string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded spend snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}

			l, err := ledger.New(ledgerPath(dir))
			if err != nil {
				return err
			}
			defer l.Close()

			ctx := context.Background()
			var snaps []models.Snapshot
			if period != "" {
				if _, err := models.ParsePeriod(period); err != nil {
					return err
				}
				snaps, err = l.ByPeriod(ctx, period)
			} else {
				snaps, err = l.Latest(ctx, limit)
			}
			if err != nil {
				return err
			}

			if len(snaps) == 0 {
				fmt.Println("No spend snapshots recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tCAPTURED\tTOTAL\tAPI CALLS")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t$%.2f\t%d\n",
					s.Period, s.CapturedAt.Local().Format("2006-01-02 15:04:05"), s.TotalUSD, s.EventCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of snapshots to show")
	cmd.Flags().StringVar(&period, "period", "", "filter by billing period (YYYY-MM)")
	return cmd
}
