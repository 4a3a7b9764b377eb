// Package metrics is the financial-metrics engine: pure, stateless
// functions over already-materialized domain and transaction slices.
// No I/O, no shared state; empty or zero input resolves to zero rather
// than an error, and range validation of inputs stays with the caller.
package metrics

import (
	"math"

	"github.com/domainfolio/backend/internal/contracts"
)

// =============================================================================
// Primitive formulas
// =============================================================================

// ROI returns the return on investment as a percentage.
// Zero investment is a defined edge case returning 0, not a division error.
func ROI(investment, revenue float64) float64 {
	if investment == 0 {
		return 0
	}
	return (revenue - investment) / investment * 100
}

// ProfitMargin returns the profit margin as a percentage of revenue.
func ProfitMargin(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue * 100
}

// AnnualizedReturn converts a total return into a compound annual rate.
// Guards against zero/negative investment and non-positive time spans.
func AnnualizedReturn(investment, revenue, years float64) float64 {
	if years <= 0 || investment <= 0 {
		return 0
	}
	totalReturn := (revenue - investment) / investment
	return math.Pow(1+totalReturn, 1/years) - 1
}

// Volatility returns the population standard deviation of the sequence.
// Sequences of fewer than two values have no spread and return 0.
func Volatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	mean := Mean(returns)

	var sumSq float64
	for _, v := range returns {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(returns)))
}

// MaxDrawdown scans the sequence tracking a running peak; drawdown at each
// point is (peak - value) / peak and the result is the largest observed.
// Callers feed monthly revenue amounts here, not cumulative portfolio
// values, so this measures drawdown of monthly cash inflow.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	maxDD := 0.0

	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// SharpeRatio returns the excess return per unit of volatility.
func SharpeRatio(annualizedReturn, riskFreeRate, volatility float64) float64 {
	if volatility == 0 {
		return 0
	}
	return (annualizedReturn - riskFreeRate) / volatility
}

// NPV returns the net present value of a cash-flow sequence at the given
// discount rate. Flows are assumed one period apart starting at t=0.
func NPV(rate float64, cashflows []float64) float64 {
	var npv float64
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR solves NPV(rate) = 0 by bisection over [-0.9999, 10].
// Returns 0 when no sign change is bracketed or the input is degenerate.
func IRR(cashflows []float64) float64 {
	if len(cashflows) < 2 {
		return 0
	}

	low, high := -0.9999, 10.0
	npvLow := NPV(low, cashflows)
	npvHigh := NPV(high, cashflows)

	if npvLow*npvHigh > 0 {
		return 0 // no root bracketed
	}

	for i := 0; i < 200; i++ {
		mid := (low + high) / 2
		npvMid := NPV(mid, cashflows)

		if math.Abs(npvMid) < 1e-7 {
			return mid
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}
	return (low + high) / 2
}

// Mean returns the arithmetic mean of the sequence, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// =============================================================================
// Domain-level statistics
// =============================================================================

// WinRate returns the percentage of sold domains whose sale price exceeded
// their holding cost. 0 when nothing has been sold.
func WinRate(domains []contracts.Domain) float64 {
	var sold, won int
	for i := range domains {
		d := &domains[i]
		if !d.IsSold() {
			continue
		}
		sold++
		if d.SalePrice != nil && *d.SalePrice > d.HoldingCost() {
			won++
		}
	}

	if sold == 0 {
		return 0
	}
	return float64(won) / float64(sold) * 100
}

// AvgHoldingPeriod returns the mean days between purchase and sale over
// sold domains. 0 when nothing has been sold.
func AvgHoldingPeriod(domains []contracts.Domain) float64 {
	var sold int
	var totalDays float64
	for i := range domains {
		d := &domains[i]
		if !d.IsSold() || d.SaleDate == nil {
			continue
		}
		sold++
		totalDays += d.HoldingDays()
	}

	if sold == 0 {
		return 0
	}
	return totalDays / float64(sold)
}

// Risk-tier thresholds. Fixed constants, not configurable per call.
const (
	highVolatility   = 0.3
	highDrawdown     = 0.5
	mediumVolatility = 0.15
	mediumDrawdown   = 0.2
)

// ClassifyRisk maps volatility and max drawdown onto a Low/Medium/High tier.
func ClassifyRisk(volatility, maxDrawdown float64) contracts.RiskLevel {
	if volatility > highVolatility || maxDrawdown > highDrawdown {
		return contracts.RiskHigh
	}
	if volatility > mediumVolatility || maxDrawdown > mediumDrawdown {
		return contracts.RiskMedium
	}
	return contracts.RiskLow
}
