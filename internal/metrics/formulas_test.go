package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/domainfolio/backend/internal/contracts"
)

func TestROI(t *testing.T) {
	tests := []struct {
		name       string
		investment float64
		revenue    float64
		want       float64
	}{
		{"break-even has zero ROI", 500, 500, 0},
		{"zero investment is a defined edge case", 0, 1000, 0},
		{"doubling the money", 100, 200, 100},
		{"total loss", 100, 0, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ROI(tt.investment, tt.revenue); got != tt.want {
				t.Errorf("ROI(%v, %v) = %v, want %v", tt.investment, tt.revenue, got, tt.want)
			}
		})
	}
}

func TestProfitMargin(t *testing.T) {
	if got := ProfitMargin(0, 100); got != 0 {
		t.Errorf("ProfitMargin with zero revenue = %v, want 0", got)
	}
	if got := ProfitMargin(200, 100); got != 50 {
		t.Errorf("ProfitMargin(200, 100) = %v, want 50", got)
	}
}

func TestAnnualizedReturn(t *testing.T) {
	// Doubling over two years is ~41.42% per year
	got := AnnualizedReturn(100, 200, 2)
	want := math.Sqrt2 - 1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AnnualizedReturn(100, 200, 2) = %v, want %v", got, want)
	}

	if got := AnnualizedReturn(100, 200, 0); got != 0 {
		t.Errorf("zero years should return 0, got %v", got)
	}
	if got := AnnualizedReturn(0, 200, 2); got != 0 {
		t.Errorf("zero investment should return 0, got %v", got)
	}
	if got := AnnualizedReturn(-10, 200, 2); got != 0 {
		t.Errorf("negative investment should return 0, got %v", got)
	}
}

func TestVolatility(t *testing.T) {
	if got := Volatility(nil); got != 0 {
		t.Errorf("Volatility(nil) = %v, want 0", got)
	}
	if got := Volatility([]float64{5}); got != 0 {
		t.Errorf("Volatility of single value = %v, want 0", got)
	}

	// Population std dev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2
	got := Volatility([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("Volatility = %v, want 2", got)
	}
}

func TestMaxDrawdown(t *testing.T) {
	if got := MaxDrawdown(nil); got != 0 {
		t.Errorf("MaxDrawdown(nil) = %v, want 0", got)
	}

	// Peak 100 to trough 40 is a 60% drawdown
	got := MaxDrawdown([]float64{50, 100, 80, 40, 90})
	if math.Abs(got-0.6) > 1e-9 {
		t.Errorf("MaxDrawdown = %v, want 0.6", got)
	}

	// Monotonic rise has no drawdown
	if got := MaxDrawdown([]float64{1, 2, 3}); got != 0 {
		t.Errorf("MaxDrawdown of rising series = %v, want 0", got)
	}
}

func TestSharpeRatio(t *testing.T) {
	if got := SharpeRatio(0.1, 0.02, 0); got != 0 {
		t.Errorf("zero volatility should return 0, got %v", got)
	}

	got := SharpeRatio(0.12, 0.02, 0.2)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("SharpeRatio = %v, want 0.5", got)
	}
}

func TestNPV(t *testing.T) {
	// At 0% the NPV is just the sum
	if got := NPV(0, []float64{-100, 60, 60}); math.Abs(got-20) > 1e-9 {
		t.Errorf("NPV at 0%% = %v, want 20", got)
	}

	// -100 now, 110 in one period, at 10% discounts to exactly 0
	if got := NPV(0.10, []float64{-100, 110}); math.Abs(got) > 1e-9 {
		t.Errorf("NPV = %v, want 0", got)
	}
}

func TestIRR(t *testing.T) {
	// -100 now, 110 next period: IRR is exactly 10%
	got := IRR([]float64{-100, 110})
	if math.Abs(got-0.10) > 1e-4 {
		t.Errorf("IRR = %v, want 0.10", got)
	}

	if got := IRR([]float64{100}); got != 0 {
		t.Errorf("IRR of single flow = %v, want 0", got)
	}

	// All-positive flows bracket no root
	if got := IRR([]float64{100, 100}); got != 0 {
		t.Errorf("IRR without sign change = %v, want 0", got)
	}
}

func TestIdempotence(t *testing.T) {
	// No hidden state: identical inputs give bit-identical outputs
	series := []float64{10, 25, 5, 40}
	if Volatility(series) != Volatility(series) {
		t.Error("Volatility is not idempotent")
	}
	if MaxDrawdown(series) != MaxDrawdown(series) {
		t.Error("MaxDrawdown is not idempotent")
	}
	if ROI(140, 300) != ROI(140, 300) {
		t.Error("ROI is not idempotent")
	}
}

func soldDomain(id string, purchaseCost, renewalCost float64, renewals int, salePrice float64, saleDate time.Time) contracts.Domain {
	return contracts.Domain{
		ID:           id,
		Status:       contracts.StatusSold,
		PurchaseCost: purchaseCost,
		RenewalCost:  renewalCost,
		RenewalCount: renewals,
		PurchaseDate: saleDate.AddDate(-1, 0, 0),
		SaleDate:     &saleDate,
		SalePrice:    &salePrice,
	}
}

func TestWinRate(t *testing.T) {
	saleDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if got := WinRate(nil); got != 0 {
		t.Errorf("WinRate with no domains = %v, want 0", got)
	}

	domains := []contracts.Domain{
		soldDomain("d1", 100, 0, 0, 300, saleDate), // win
		soldDomain("d2", 100, 0, 0, 50, saleDate),  // loss
		{ID: "d3", Status: contracts.StatusActive, PurchaseCost: 10},
	}

	if got := WinRate(domains); got != 50 {
		t.Errorf("WinRate = %v, want 50", got)
	}
}

func TestAvgHoldingPeriod(t *testing.T) {
	if got := AvgHoldingPeriod(nil); got != 0 {
		t.Errorf("AvgHoldingPeriod with no domains = %v, want 0", got)
	}

	saleDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	d := soldDomain("d1", 100, 0, 0, 300, saleDate)
	d.PurchaseDate = saleDate.AddDate(0, 0, -30)

	got := AvgHoldingPeriod([]contracts.Domain{d})
	if got != 30 {
		t.Errorf("AvgHoldingPeriod = %v, want 30", got)
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name        string
		volatility  float64
		maxDrawdown float64
		want        contracts.RiskLevel
	}{
		{"high volatility alone", 0.35, 0, contracts.RiskHigh},
		{"high drawdown alone", 0.05, 0.6, contracts.RiskHigh},
		{"medium by drawdown", 0.10, 0.25, contracts.RiskMedium},
		{"medium by volatility", 0.20, 0.1, contracts.RiskMedium},
		{"low", 0.05, 0.1, contracts.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.volatility, tt.maxDrawdown); got != tt.want {
				t.Errorf("ClassifyRisk(%v, %v) = %v, want %v", tt.volatility, tt.maxDrawdown, got, tt.want)
			}
		})
	}
}
