package models

import "time"

// WarningState is the durable record of the highest budget threshold
// already surfaced in a billing period. A MaxThresholdWarned of zero
// means no warning has been shown this period.
type WarningState struct {
	PeriodID           string    `json:"period_id"`
	MaxThresholdWarned int       `json:"max_threshold_warned,omitempty"`
	LastChecked        time.Time `json:"last_cost_check,omitempty"`
}

// Unset returns the blank state for a period.
func Unset(period Period) WarningState {
	return WarningState{PeriodID: period.String()}
}

// AppliesTo reports whether the state belongs to the given period.
// State carried over from an earlier period never suppresses warnings.
func (s WarningState) AppliesTo(period Period) bool {
	return s.PeriodID == period.String()
}

// Snapshot is one recorded point of monthly spend, written by the stop
// hook so spend growth over the month is queryable later.
type Snapshot struct {
	ID         int64     `json:"id"`
	Period     string    `json:"period"`
	CapturedAt time.Time `json:"captured_at"`
	TotalUSD   float64   `json:"total_usd"`
	EventCount int       `json:"event_count"`
}
