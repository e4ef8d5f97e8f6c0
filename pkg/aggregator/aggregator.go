// Package aggregator reduces usage events to a per-period cost summary.
package aggregator

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/costguard/costguard/pkg/models"
	"github.com/costguard/costguard/pkg/pricing"
)

// Summarize filters events to the billing period containing now and
// prices them against the embedded table. Event timestamps are
// converted to now's location before bucketing, so the period boundary
// follows the host's clock. Totals accumulate in float64 without
// per-event rounding.
func Summarize(events []models.UsageEvent, now time.Time) models.CostSummary {
	period := models.PeriodOf(now)
	summary := models.CostSummary{
		Period:  period,
		ByModel: make(map[string]float64),
	}

	warned := make(map[string]bool)

	for _, ev := range events {
		if models.PeriodOf(ev.Timestamp.In(now.Location())) != period {
			continue
		}

		summary.APICalls++
		summary.Tokens.Add(ev.Usage)

		// Error rows carry usage but no model; they count toward token
		// statistics and nothing else.
		if ev.Model == "" {
			continue
		}

		rates, priced := pricing.Lookup(ev.Model)
		if !priced {
			summary.UnpricedEvents++
			if !warned[ev.Model] {
				warned[ev.Model] = true
				log.Warn().Str("model", ev.Model).Msg("unknown model, using default pricing")
			}
		}

		cost := pricing.EventCost(ev.Usage, rates)
		summary.ByModel[pricing.DisplayName(ev.Model)] += cost
		summary.TotalUSD += cost
	}

	return summary
}
