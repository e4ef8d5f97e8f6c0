package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/costguard/costguard/pkg/models"
	"github.com/costguard/costguard/pkg/state"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the warning deduplication state",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the persisted warning state",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}

			st := state.New(statePath(dir)).Load(models.PeriodOf(time.Now()))

			fmt.Println("Cost Guardrails state:")
			fmt.Printf("  Period:               %s\n", st.PeriodID)
			if st.MaxThresholdWarned > 0 {
				fmt.Printf("  Max threshold warned: %d%%\n", st.MaxThresholdWarned)
			} else {
				fmt.Println("  Max threshold warned: none")
			}
			if st.LastChecked.IsZero() {
				fmt.Println("  Last cost check:      never")
			} else {
				fmt.Printf("  Last cost check:      %s\n", st.LastChecked.Format(time.RFC3339))
			}
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the warning state for the current period",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := claudeDir()
			if err != nil {
				return err
			}

			period := models.PeriodOf(time.Now())
			if err := state.New(statePath(dir)).Save(models.Unset(period)); err != nil {
				return err
			}
			fmt.Printf("Warning state reset for %s.\n", period)
			return nil
		},
	}

	cmd.AddCommand(showCmd, resetCmd)
	return cmd
}
