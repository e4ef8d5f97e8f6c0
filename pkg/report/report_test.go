package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/costguard/costguard/pkg/config"
	"github.com/costguard/costguard/pkg/models"
)

func testConfig() config.Config {
	cfg := config.Default()
	return cfg
}

func summaryWithTotal(total float64) models.CostSummary {
	return models.CostSummary{
		Period:   models.Period{Year: 2026, Month: time.August},
		TotalUSD: total,
		ByModel:  map[string]float64{"Sonnet": total},
		APICalls: 10,
	}
}

func TestWarningContents(t *testing.T) {
	msg := Warning([]int{50}, summaryWithTotal(8.00), testConfig())

	if !strings.Contains(msg, "50% of your monthly budget") {
		t.Errorf("missing headline: %q", msg)
	}
	if !strings.Contains(msg, "$8.00 / $15.00 (53.3%)") {
		t.Errorf("missing spending line: %q", msg)
	}
	if !strings.Contains(msg, "Remaining: $7.00") {
		t.Errorf("missing remaining line: %q", msg)
	}
	if !strings.Contains(msg, "Sonnet: $8.00") {
		t.Errorf("missing breakdown: %q", msg)
	}
	if strings.Contains(msg, "Consider:") {
		t.Errorf("suggestions should only appear over budget: %q", msg)
	}
}

func TestWarningUsesHighestCrossed(t *testing.T) {
	msg := Warning([]int{50, 75, 90}, summaryWithTotal(14.25), testConfig())
	if !strings.Contains(msg, "90% used") {
		t.Errorf("expected the 90%% headline, got %q", msg)
	}
}

func TestWarningOverBudgetSuggestions(t *testing.T) {
	msg := Warning([]int{100}, summaryWithTotal(15.50), testConfig())
	if !strings.Contains(msg, "Consider:") || !strings.Contains(msg, "/model haiku") {
		t.Errorf("expected cost suggestions when over budget: %q", msg)
	}
}

func TestStopSummaryVariants(t *testing.T) {
	cfg := testConfig()

	normal := StopSummary(summaryWithTotal(5.00), cfg)
	if !strings.Contains(normal, "$5.00 / $15.00") || !strings.Contains(normal, "$10.00 remaining") {
		t.Errorf("unexpected normal summary: %q", normal)
	}
	if strings.Contains(normal, "🚨") || strings.Contains(normal, "⚠️") {
		t.Errorf("normal summary should carry no alarm: %q", normal)
	}

	near := StopSummary(summaryWithTotal(14.00), cfg)
	if !strings.Contains(near, "⚠️") {
		t.Errorf("expected caution at 93%%: %q", near)
	}

	over := StopSummary(summaryWithTotal(16.00), cfg)
	if !strings.Contains(over, "OVER BUDGET by $1.00") {
		t.Errorf("unexpected over-budget summary: %q", over)
	}
}

func TestStatusBreakdown(t *testing.T) {
	cfg := testConfig()
	summary := models.CostSummary{
		Period:   models.Period{Year: 2026, Month: time.August},
		TotalUSD: 3.98,
		ByModel:  map[string]float64{"Sonnet": 3.00, "Haiku": 0.98},
		Tokens:   models.TokenUsage{InputTokens: 1000, OutputTokens: 200},
		APICalls: 42,
	}
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	out := Status(summary, cfg, now)

	for _, want := range []string{
		"Cost Status for August 2026",
		"Current spending: $3.98",
		"Monthly budget:   $15.00",
		"Usage:            26.5%",
		"Haiku",
		"Sonnet",
		"Total API calls: 42",
		"HEALTHY",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Tips to reduce costs") {
		t.Errorf("tips should only appear over budget:\n%s", out)
	}
}

func TestStatusOverBudget(t *testing.T) {
	out := Status(summaryWithTotal(20.00), testConfig(), time.Now())
	if !strings.Contains(out, "ALERT") {
		t.Errorf("expected the 125%%+ banner:\n%s", out)
	}
	if !strings.Contains(out, "Tips to reduce costs") {
		t.Errorf("expected cost tips over budget:\n%s", out)
	}
}

func TestStatusReportsUnpricedEvents(t *testing.T) {
	summary := summaryWithTotal(1.00)
	summary.UnpricedEvents = 3

	out := Status(summary, testConfig(), time.Now())
	if !strings.Contains(out, "Unpriced events") {
		t.Errorf("unpriced events must be observable:\n%s", out)
	}
}

func TestHookEnvelope(t *testing.T) {
	raw, err := HookEnvelope("SessionStart", "hello")
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		HookSpecificOutput struct {
			HookEventName string `json:"hookEventName"`
			SystemMessage string `json:"systemMessage"`
		} `json:"hookSpecificOutput"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if decoded.HookSpecificOutput.HookEventName != "SessionStart" {
		t.Errorf("unexpected event name %q", decoded.HookSpecificOutput.HookEventName)
	}
	if decoded.HookSpecificOutput.SystemMessage != "hello" {
		t.Errorf("unexpected message %q", decoded.HookSpecificOutput.SystemMessage)
	}
}
