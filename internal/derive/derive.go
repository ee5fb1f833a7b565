// Package derive turns pairs of related quantities into percentages and
// three-tier severity buckets. Division by zero never surfaces: a ratio with
// a zero, negative or non-finite denominator is reported as 0, which the
// dashboard renders the same as a genuine 0%.
package derive

import "math"

// Tier is a bucketed severity level.
type Tier string

const (
	TierLow        Tier = "low"
	TierMedium     Tier = "medium"
	TierSufficient Tier = "sufficient"

	TierExhausted Tier = "exhausted"
	TierNear      Tier = "near"
	TierAvailable Tier = "available"
)

// Color classes used by severity bars.
const (
	colorRed    = "bg-red-500"
	colorYellow = "bg-yellow-500"
	colorGreen  = "bg-green-500"
)

// Stock thresholds are inclusive on the lower tier.
const (
	StockLowMax    = 20.0
	StockMediumMax = 50.0
)

// Quota thresholds are inclusive on the higher tier.
const (
	QuotaExhaustedMin = 100.0
	QuotaNearMin      = 80.0
)

// Severity is a tier with its display attributes.
type Severity struct {
	Tier       Tier    `json:"tier"`
	ColorClass string  `json:"colorClass"`
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

// UtilizationPercentage returns current/total*100, or 0 when the ratio is undefined.
func UtilizationPercentage(current, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	pct := current / total * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}

// QuotaRemainingPercentage is the share of the monthly quota still available.
func QuotaRemainingPercentage(remaining, monthly float64) float64 {
	return UtilizationPercentage(remaining, monthly)
}

// StockSeverity tiers current stock against capacity: low up to StockLowMax percent,
// medium up to StockMediumMax, sufficient above.
func StockSeverity(current, capacity float64) Severity {
	pct := UtilizationPercentage(current, capacity)
	switch {
	case pct <= StockLowMax:
		return Severity{Tier: TierLow, ColorClass: colorRed, Label: "Stok Rendah", Percentage: pct}
	case pct <= StockMediumMax:
		return Severity{Tier: TierMedium, ColorClass: colorYellow, Label: "Stok Sedang", Percentage: pct}
	default:
		return Severity{Tier: TierSufficient, ColorClass: colorGreen, Label: "Stok Cukup", Percentage: pct}
	}
}

// QuotaSeverity tiers the used share of a monthly quota: near from QuotaNearMin
// percent, exhausted from QuotaExhaustedMin.
func QuotaSeverity(used, monthly float64) Severity {
	pct := UtilizationPercentage(used, monthly)
	switch {
	case pct >= QuotaExhaustedMin:
		return Severity{Tier: TierExhausted, ColorClass: colorRed, Label: "Kuota Habis", Percentage: pct}
	case pct >= QuotaNearMin:
		return Severity{Tier: TierNear, ColorClass: colorYellow, Label: "Hampir Habis", Percentage: pct}
	default:
		return Severity{Tier: TierAvailable, ColorClass: colorGreen, Label: "Tersedia", Percentage: pct}
	}
}

// DayOverDayChangePercent returns (today-yesterday)/yesterday*100.
// A zero yesterday yields 0, even when today is non-zero.
func DayOverDayChangePercent(today, yesterday float64) float64 {
	if yesterday == 0 || math.IsNaN(yesterday) || math.IsInf(yesterday, 0) {
		return 0
	}
	change := (today - yesterday) / yesterday * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0
	}
	return change
}
