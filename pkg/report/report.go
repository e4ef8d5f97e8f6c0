// Package report renders aggregator and threshold output as text.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/costguard/costguard/pkg/config"
	"github.com/costguard/costguard/pkg/models"
	"github.com/costguard/costguard/pkg/pricing"
)

var warningHeadlines = map[int]string{
	50:  "You've used 50% of your monthly budget",
	75:  "You've used 75% of your monthly budget",
	90:  "You're approaching your monthly budget limit (90% used)",
	100: "You've reached your monthly budget",
	125: "You've exceeded your monthly budget by 25%",
}

func severityEmoji(threshold int) string {
	switch {
	case threshold >= 100:
		return "🚨"
	case threshold >= 75:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Warning formats the session-start warning for a set of newly crossed
// thresholds. The highest crossed threshold drives the headline.
func Warning(crossed []int, summary models.CostSummary, cfg config.Config) string {
	highest := crossed[len(crossed)-1]
	percentage := 0.0
	if cfg.MonthlyBudget > 0 {
		percentage = 100 * summary.TotalUSD / cfg.MonthlyBudget
	}
	remaining := cfg.MonthlyBudget - summary.TotalUSD

	headline, ok := warningHeadlines[highest]
	if !ok {
		headline = fmt.Sprintf("You've used %d%% of your monthly budget", highest)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Cost Guardrails: %s\n\n", severityEmoji(highest), headline)
	fmt.Fprintf(&b, "Current spending: %s / %s (%.1f%%)\n",
		pricing.FormatUSD(summary.TotalUSD), pricing.FormatUSD(cfg.MonthlyBudget), percentage)
	fmt.Fprintf(&b, "Remaining: %s\n", pricing.FormatUSD(remaining))

	if len(summary.ByModel) > 0 {
		b.WriteString("\nBreakdown by model:\n")
		for _, name := range sortedModels(summary.ByModel) {
			fmt.Fprintf(&b, "  - %s: %s\n", name, pricing.FormatUSD(summary.ByModel[name]))
		}
	}

	if highest >= 100 {
		b.WriteString("\nConsider:\n")
		b.WriteString("  - Using /compact to reduce context size\n")
		b.WriteString("  - Switching to Haiku for simpler tasks (/model haiku)\n")
		b.WriteString("  - Breaking complex tasks into smaller steps\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// StopSummary formats the one-line spending summary shown at session end.
func StopSummary(summary models.CostSummary, cfg config.Config) string {
	spent := pricing.FormatUSD(summary.TotalUSD)
	budget := pricing.FormatUSD(cfg.MonthlyBudget)
	remaining := cfg.MonthlyBudget - summary.TotalUSD

	percentage := 0.0
	if cfg.MonthlyBudget > 0 {
		percentage = 100 * summary.TotalUSD / cfg.MonthlyBudget
	}

	switch {
	case percentage >= 100:
		return fmt.Sprintf("🚨 Monthly spending: %s / %s (OVER BUDGET by %s)",
			spent, budget, pricing.FormatUSD(-remaining))
	case percentage >= 90:
		return fmt.Sprintf("⚠️  Monthly spending: %s / %s (%s remaining)",
			spent, budget, pricing.FormatUSD(remaining))
	default:
		return fmt.Sprintf("Monthly spending: %s / %s (%s remaining)",
			spent, budget, pricing.FormatUSD(remaining))
	}
}

// Status renders the full on-demand breakdown.
func Status(summary models.CostSummary, cfg config.Config, now time.Time) string {
	percentage := 0.0
	if cfg.MonthlyBudget > 0 {
		percentage = 100 * summary.TotalUSD / cfg.MonthlyBudget
	}
	remaining := cfg.MonthlyBudget - summary.TotalUSD

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Cost Status for %s\n\n", now.Format("January 2006"))

	fmt.Fprintf(&b, "Current spending: %s\n", pricing.FormatUSD(summary.TotalUSD))
	fmt.Fprintf(&b, "Monthly budget:   %s\n", pricing.FormatUSD(cfg.MonthlyBudget))
	fmt.Fprintf(&b, "Remaining:        %s\n", pricing.FormatUSD(remaining))
	fmt.Fprintf(&b, "Usage:            %.1f%%\n", percentage)

	if len(summary.ByModel) > 0 {
		b.WriteString("\nBreakdown by model:\n")
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, name := range sortedModels(summary.ByModel) {
			cost := summary.ByModel[name]
			share := 0.0
			if summary.TotalUSD > 0 {
				share = 100 * cost / summary.TotalUSD
			}
			fmt.Fprintf(w, "  %s\t%s\t(%.1f%%)\n", name, pricing.FormatUSD(cost), share)
		}
		w.Flush()
	}

	fmt.Fprintf(&b, "\nTotal API calls: %d\n", summary.APICalls)
	b.WriteString("Total tokens:\n")
	fmt.Fprintf(&b, "  Input:       %12d\n", summary.Tokens.InputTokens)
	fmt.Fprintf(&b, "  Output:      %12d\n", summary.Tokens.OutputTokens)
	fmt.Fprintf(&b, "  Cache write: %12d\n", summary.Tokens.CacheWriteTokens)
	fmt.Fprintf(&b, "  Cache read:  %12d\n", summary.Tokens.CacheReadTokens)

	if summary.UnpricedEvents > 0 {
		fmt.Fprintf(&b, "\nUnpriced events (default rates applied): %d\n", summary.UnpricedEvents)
	}

	b.WriteString("\n" + statusBanner(percentage) + "\n")

	if percentage >= 100 {
		b.WriteString("\n💡 Tips to reduce costs:\n")
		b.WriteString("  • Use /compact to reduce context size\n")
		b.WriteString("  • Switch to Haiku for simpler tasks (/model haiku)\n")
		b.WriteString("  • Break complex tasks into smaller steps\n")
		b.WriteString("  • Clear history between unrelated tasks (/clear)\n")
	}

	return b.String()
}

func statusBanner(percentage float64) string {
	switch {
	case percentage >= 125:
		return "🚨 ALERT: Budget exceeded by 25% or more."
	case percentage >= 100:
		return "🚨 WARNING: Monthly budget exceeded."
	case percentage >= 90:
		return "⚠️  CAUTION: Approaching budget limit (90%+)."
	case percentage >= 75:
		return "⚠️  NOTICE: 75% of budget used."
	case percentage >= 50:
		return "ℹ️  INFO: 50% of budget used."
	default:
		return "✅ HEALTHY: Budget usage under control."
	}
}

func sortedModels(byModel map[string]float64) []string {
	names := make([]string, 0, len(byModel))
	for name := range byModel {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hookOutput is the stdout envelope Claude Code expects from hooks.
type hookOutput struct {
	HookSpecificOutput struct {
		HookEventName string `json:"hookEventName"`
		SystemMessage string `json:"systemMessage"`
	} `json:"hookSpecificOutput"`
}

// HookEnvelope wraps a message in the hook stdout protocol.
func HookEnvelope(eventName, message string) (string, error) {
	var out hookOutput
	out.HookSpecificOutput.HookEventName = eventName
	out.HookSpecificOutput.SystemMessage = message

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode hook output: %w", err)
	}
	return string(data), nil
}
