package aggregator

import (
	"math"
	"testing"
	"time"

	"github.com/costguard/costguard/pkg/models"
)

var now = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func event(ts time.Time, model string, usage models.TokenUsage) models.UsageEvent {
	return models.UsageEvent{Timestamp: ts, Model: model, Usage: usage}
}

func TestSummarizeFiltersToCurrentPeriod(t *testing.T) {
	events := []models.UsageEvent{
		event(now.AddDate(0, 0, -5), "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 1_000_000}),
		event(now.AddDate(0, -1, 0), "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 99_000_000}),
		event(now.AddDate(0, 1, 0), "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 99_000_000}),
	}

	s := Summarize(events, now)
	if s.APICalls != 1 {
		t.Errorf("expected 1 event in period, got %d", s.APICalls)
	}
	if math.Abs(s.TotalUSD-3.00) > 1e-9 {
		t.Errorf("expected $3.00, got %v", s.TotalUSD)
	}
}

func TestSummarizeOtherPeriodValuesNeverLeak(t *testing.T) {
	inPeriod := event(now, "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 500_000})
	outPeriod := event(now.AddDate(0, -1, 0), "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 1})

	before := Summarize([]models.UsageEvent{inPeriod, outPeriod}, now)

	outPeriod.Usage.InputTokens = 500_000_000
	after := Summarize([]models.UsageEvent{inPeriod, outPeriod}, now)

	if before.TotalUSD != after.TotalUSD {
		t.Errorf("non-current-period event changed the total: %v vs %v", before.TotalUSD, after.TotalUSD)
	}
}

func TestSummarizeTotalsMatchBreakdown(t *testing.T) {
	events := []models.UsageEvent{
		event(now, "claude-sonnet-4-5-20250929", models.TokenUsage{InputTokens: 1_000_000, OutputTokens: 100_000}),
		event(now, "claude-haiku-4-5-20251001", models.TokenUsage{InputTokens: 2_000_000}),
		event(now, "claude-sonnet-4-5-20250929", models.TokenUsage{CacheReadTokens: 10_000_000}),
	}

	s := Summarize(events, now)

	var sum float64
	for name, subtotal := range s.ByModel {
		if subtotal < 0 {
			t.Errorf("negative subtotal for %s: %v", name, subtotal)
		}
		sum += subtotal
	}
	if math.Abs(s.TotalUSD-sum) > 1e-9 {
		t.Errorf("total %v != sum of subtotals %v", s.TotalUSD, sum)
	}

	// sonnet: 3.00 + 1.50 + 3.00; haiku: 1.60
	if math.Abs(s.ByModel["Sonnet"]-7.50) > 1e-9 {
		t.Errorf("Sonnet subtotal: %v", s.ByModel["Sonnet"])
	}
	if math.Abs(s.ByModel["Haiku"]-1.60) > 1e-9 {
		t.Errorf("Haiku subtotal: %v", s.ByModel["Haiku"])
	}
}

func TestSummarizeUnknownModelIsObservable(t *testing.T) {
	events := []models.UsageEvent{
		event(now, "some-future-model", models.TokenUsage{InputTokens: 1_000_000}),
	}

	s := Summarize(events, now)
	if s.UnpricedEvents != 1 {
		t.Errorf("expected 1 unpriced event, got %d", s.UnpricedEvents)
	}
	// Unknown models price at the default (Sonnet) rates, not zero.
	if math.Abs(s.TotalUSD-3.00) > 1e-9 {
		t.Errorf("expected default-rate cost $3.00, got %v", s.TotalUSD)
	}
}

func TestSummarizeModellessEventCountsTokensOnly(t *testing.T) {
	events := []models.UsageEvent{
		event(now, "", models.TokenUsage{InputTokens: 123}),
	}

	s := Summarize(events, now)
	if s.APICalls != 1 {
		t.Errorf("expected the event counted as an API call, got %d", s.APICalls)
	}
	if s.Tokens.InputTokens != 123 {
		t.Errorf("expected token stats recorded, got %+v", s.Tokens)
	}
	if s.TotalUSD != 0 {
		t.Errorf("model-less event must not contribute cost, got %v", s.TotalUSD)
	}
}

func TestSummarizeTokenStats(t *testing.T) {
	events := []models.UsageEvent{
		event(now, "haiku", models.TokenUsage{InputTokens: 10, OutputTokens: 20, CacheWriteTokens: 30, CacheReadTokens: 40}),
		event(now, "haiku", models.TokenUsage{InputTokens: 1, OutputTokens: 2, CacheWriteTokens: 3, CacheReadTokens: 4}),
	}

	s := Summarize(events, now)
	want := models.TokenUsage{InputTokens: 11, OutputTokens: 22, CacheWriteTokens: 33, CacheReadTokens: 44}
	if s.Tokens != want {
		t.Errorf("token stats %+v, want %+v", s.Tokens, want)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := Summarize(nil, now)
	if s.TotalUSD != 0 || s.APICalls != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if s.Period != models.PeriodOf(now) {
		t.Errorf("expected period %v, got %v", models.PeriodOf(now), s.Period)
	}
}

func TestSummarizePeriodStartBoundary(t *testing.T) {
	// The first instant of the month is inside the period; one second
	// earlier is not.
	start := models.PeriodOf(now).Start(time.UTC)

	atStart := event(start, "claude-haiku-4-5-20251001", models.TokenUsage{InputTokens: 1_000_000})
	justBefore := event(start.Add(-time.Second), "claude-haiku-4-5-20251001", models.TokenUsage{InputTokens: 1_000_000})

	s := Summarize([]models.UsageEvent{atStart, justBefore}, now)
	if s.APICalls != 1 {
		t.Errorf("expected only the event at the period start, got %d", s.APICalls)
	}
	if math.Abs(s.TotalUSD-0.80) > 1e-9 {
		t.Errorf("expected $0.80, got %v", s.TotalUSD)
	}
}

func TestSummarizeTimezoneBoundary(t *testing.T) {
	// 2026-08-31 23:30 UTC is already September in UTC+2; bucketing
	// follows the reference clock's location.
	utcPlus2 := time.FixedZone("UTC+2", 2*60*60)
	localNow := time.Date(2026, time.September, 1, 10, 0, 0, 0, utcPlus2)

	ev := event(time.Date(2026, time.August, 31, 23, 30, 0, 0, time.UTC),
		"claude-haiku-4-5-20251001", models.TokenUsage{InputTokens: 1_000_000})

	s := Summarize([]models.UsageEvent{ev}, localNow)
	if s.APICalls != 1 {
		t.Errorf("expected the event bucketed into September (UTC+2), got %d events", s.APICalls)
	}
}
