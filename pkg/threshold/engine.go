// Package threshold decides which budget thresholds are newly crossed.
package threshold

import (
	"sort"

	"github.com/costguard/costguard/pkg/config"
	"github.com/costguard/costguard/pkg/models"
)

// Result of one threshold evaluation. Crossed lists every threshold
// newly crossed on this run, ascending; State is the record to persist
// (identical to the prior state when Crossed is empty).
type Result struct {
	PercentUsed float64
	Crossed     []int
	State       models.WarningState
}

// Evaluate computes the thresholds to warn about given current spend,
// the budget config, and the persisted state. It is a pure function:
// callers load state before and save Result.State after.
//
// A threshold t counts as crossed when percent used >= t (inclusive
// boundary) and t exceeds the highest threshold already warned about
// this period. State from another period is treated as unset, so a new
// month starts clean. State only ever advances within a period: a
// later drop in spend neither un-warns nor re-arms a threshold, which
// makes repeated invocations at the same spend level idempotent.
//
// A non-positive budget or a disabled config is a no-warning
// configuration, never an error.
func Evaluate(totalUSD float64, cfg config.Config, prior models.WarningState, period models.Period) Result {
	res := Result{State: prior}

	if !cfg.Enabled || cfg.MonthlyBudget <= 0 || len(cfg.WarningThresholds) == 0 {
		return res
	}

	res.PercentUsed = 100 * totalUSD / cfg.MonthlyBudget

	floor := 0
	if prior.AppliesTo(period) {
		floor = prior.MaxThresholdWarned
	}

	// Config loading sorts thresholds, but the engine does not trust
	// its callers to have done so.
	thresholds := append([]int(nil), cfg.WarningThresholds...)
	sort.Ints(thresholds)

	for _, t := range thresholds {
		if t <= floor {
			continue
		}
		if res.PercentUsed >= float64(t) {
			res.Crossed = append(res.Crossed, t)
		}
	}

	if len(res.Crossed) > 0 {
		res.State = models.WarningState{
			PeriodID:           period.String(),
			MaxThresholdWarned: res.Crossed[len(res.Crossed)-1],
			LastChecked:        prior.LastChecked,
		}
	}

	return res
}
