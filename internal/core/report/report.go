// Package report holds the derived-metric arithmetic for campaigns:
// commission, progress, cost per stream and ROI. The dashboard screens all
// read from these helpers so the formulas live in exactly one place.
package report

import "math"

// CommissionRate is the flat salesperson commission applied to every
// campaign budget regardless of status.
const CommissionRate = 0.20

// Commission returns the commission owed on a budget, in cents, rounded
// half up to the cent.
func Commission(budgetCents int64) int64 {
	return int64(math.Round(float64(budgetCents) * CommissionRate))
}

// Progress returns the delivered share of a stream goal as a whole
// percentage, rounded half up. Negative remainders (over-delivery) push the
// result past 100 on purpose so operators see over-performing campaigns;
// the result is floored at 0 when remaining exceeds the goal. A non-positive
// goal yields 0.
func Progress(streamGoal, remainingStreams int64) int {
	if streamGoal <= 0 {
		return 0
	}
	pct := float64(streamGoal-remainingStreams) / float64(streamGoal) * 100
	if pct < 0 {
		return 0
	}
	return int(math.Round(pct))
}

// CostPerStream returns the average cost in cents per delivered stream, or 0
// when nothing has been delivered.
func CostPerStream(totalCostCents, actualStreams int64) float64 {
	if actualStreams <= 0 {
		return 0
	}
	return float64(totalCostCents) / float64(actualStreams)
}

// ROI returns return on investment as a percentage, or 0 when there is no
// cost to measure against.
func ROI(revenueCents, totalCostCents int64) float64 {
	if totalCostCents <= 0 {
		return 0
	}
	return float64(revenueCents-totalCostCents) / float64(totalCostCents) * 100
}

// VendorCost prices a stream count against a vendor's per-thousand rate,
// rounding half up to the cent. A nil rate costs nothing.
func VendorCost(streams int64, costPer1kCents *int64) int64 {
	if costPer1kCents == nil || streams <= 0 {
		return 0
	}
	return int64(math.Round(float64(streams) / 1000 * float64(*costPer1kCents)))
}
