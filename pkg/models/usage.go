package models

import "time"

// TokenUsage contains token counts from a single API response.
type TokenUsage struct {
	InputTokens      int64 `json:"input_tokens"`
	OutputTokens     int64 `json:"output_tokens"`
	CacheWriteTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadTokens  int64 `json:"cache_read_input_tokens"`
}

// Add accumulates another usage count into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheWriteTokens += other.CacheWriteTokens
	u.CacheReadTokens += other.CacheReadTokens
}

// UsageEvent is one line of usage telemetry from a session log.
// Events are rebuilt fresh on every scan; nothing here is persisted.
type UsageEvent struct {
	Timestamp time.Time
	SessionID string
	Model     string
	Usage     TokenUsage
}

// ModelPricing holds USD rates per million tokens for one model.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// CostSummary aggregates spend for one billing period.
// TotalUSD always equals the sum of ByModel values.
type CostSummary struct {
	Period         Period
	TotalUSD       float64
	ByModel        map[string]float64
	Tokens         TokenUsage
	APICalls       int
	UnpricedEvents int
}
