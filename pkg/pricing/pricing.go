package pricing

import (
	"fmt"
	"strings"

	"github.com/costguard/costguard/pkg/models"
)

// DefaultModel is used when a model cannot be identified. Sonnet rates
// are the conservative choice: unknown usage is over-estimated rather
// than under-counted.
const DefaultModel = "claude-sonnet-4-5-20250929"

// table holds USD per million tokens, keyed by full model ID.
var table = map[string]models.ModelPricing{
	"claude-sonnet-4-5-20250929": {
		InputPerMTok:      3.00,
		OutputPerMTok:     15.00,
		CacheWritePerMTok: 3.75,
		CacheReadPerMTok:  0.30,
	},
	"claude-haiku-4-5-20251001": {
		InputPerMTok:      0.80,
		OutputPerMTok:     4.00,
		CacheWritePerMTok: 1.00,
		CacheReadPerMTok:  0.08,
	},
}

var aliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-5-20250929",
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"sonnet":        "claude-sonnet-4-5-20250929",
	"haiku":         "claude-haiku-4-5-20251001",
}

// Normalize resolves a model name or alias to a full model ID, falling
// back to DefaultModel for anything unrecognized.
func Normalize(model string) string {
	if model == "" {
		return DefaultModel
	}
	if _, ok := table[model]; ok {
		return model
	}
	lower := strings.ToLower(model)
	if id, ok := aliases[lower]; ok {
		return id
	}
	if strings.Contains(lower, "sonnet") {
		return "claude-sonnet-4-5-20250929"
	}
	if strings.Contains(lower, "haiku") {
		return "claude-haiku-4-5-20251001"
	}
	return DefaultModel
}

// Lookup returns the pricing for a model. The second return value is
// false when the model had no exact or alias match and the default
// entry was substituted; callers surface that as an unpriced event.
func Lookup(model string) (models.ModelPricing, bool) {
	normalized := Normalize(model)
	p, ok := table[normalized]
	if !ok {
		// Table always contains DefaultModel; this keeps the zero
		// value out of the cost path if the table ever shrinks.
		return table[DefaultModel], false
	}
	if normalized == DefaultModel && !knownName(model) {
		return p, false
	}
	return p, true
}

func knownName(model string) bool {
	if _, ok := table[model]; ok {
		return true
	}
	lower := strings.ToLower(model)
	if _, ok := aliases[lower]; ok {
		return true
	}
	return strings.Contains(lower, "sonnet") || strings.Contains(lower, "haiku")
}

// EventCost prices one usage record. Rates are per million tokens;
// accumulation stays in float64 with no per-event rounding.
func EventCost(usage models.TokenUsage, p models.ModelPricing) float64 {
	cost := float64(usage.InputTokens) / 1e6 * p.InputPerMTok
	cost += float64(usage.OutputTokens) / 1e6 * p.OutputPerMTok
	cost += float64(usage.CacheWriteTokens) / 1e6 * p.CacheWritePerMTok
	cost += float64(usage.CacheReadTokens) / 1e6 * p.CacheReadPerMTok
	return cost
}

// DisplayName returns a short family name for grouping in reports.
func DisplayName(model string) string {
	normalized := strings.ToLower(Normalize(model))
	switch {
	case strings.Contains(normalized, "sonnet"):
		return "Sonnet"
	case strings.Contains(normalized, "haiku"):
		return "Haiku"
	default:
		return "Unknown"
	}
}

// FormatUSD renders a dollar amount rounded to cents. Rounding happens
// only here, at the presentation boundary.
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
