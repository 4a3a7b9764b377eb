package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/domainfolio/backend/internal/contracts"
)

func TestDomainPerformance_SoldDomain(t *testing.T) {
	// purchase 100, 2 renewals at 20, sold for 300:
	// totalCost 140, revenue 300, profit 160, roi ~114.29%
	salePrice := 300.0
	saleDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	d := contracts.Domain{
		ID:           "d1",
		Status:       contracts.StatusSold,
		PurchaseCost: 100,
		RenewalCost:  20,
		RenewalCount: 2,
		SaleDate:     &saleDate,
		SalePrice:    &salePrice,
	}

	perf := DomainPerformance(d, nil)

	if perf.TotalCost != 140 {
		t.Errorf("TotalCost = %v, want 140", perf.TotalCost)
	}
	if perf.Revenue != 300 {
		t.Errorf("Revenue = %v, want 300", perf.Revenue)
	}
	if perf.Profit != 160 {
		t.Errorf("Profit = %v, want 160", perf.Profit)
	}
	if math.Abs(perf.ROI-114.2857142857) > 1e-6 {
		t.Errorf("ROI = %v, want ~114.29", perf.ROI)
	}
}

func TestDomainPerformance_RevenueFallbackChain(t *testing.T) {
	salePrice := 500.0
	estimate := 250.0
	net := 120.0

	sellTx := contracts.Transaction{
		ID:        "t1",
		DomainID:  "d1",
		Type:      contracts.TxSell,
		Amount:    150,
		NetAmount: &net,
	}
	otherDomainTx := contracts.Transaction{
		ID:       "t2",
		DomainID: "other",
		Type:     contracts.TxSell,
		Amount:   9999,
	}
	renewTx := contracts.Transaction{
		ID:       "t3",
		DomainID: "d1",
		Type:     contracts.TxRenew,
		Amount:   20,
	}
	txs := []contracts.Transaction{sellTx, otherDomainTx, renewTx}

	tests := []struct {
		name   string
		domain contracts.Domain
		want   float64
	}{
		{
			name: "sale price wins over estimate and transactions",
			domain: contracts.Domain{
				ID: "d1", SalePrice: &salePrice, EstimatedValue: &estimate,
			},
			want: 500,
		},
		{
			name: "estimate wins over transactions",
			domain: contracts.Domain{
				ID: "d1", EstimatedValue: &estimate,
			},
			want: 250,
		},
		{
			name:   "summed sell transactions as last resort",
			domain: contracts.Domain{ID: "d1"},
			want:   120, // net amount of the matching sell, not its gross
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf := DomainPerformance(tt.domain, txs)
			if perf.Revenue != tt.want {
				t.Errorf("Revenue = %v, want %v", perf.Revenue, tt.want)
			}
		})
	}
}

func TestDomainPerformance_ZeroCost(t *testing.T) {
	estimate := 100.0
	d := contracts.Domain{ID: "d1", EstimatedValue: &estimate}

	perf := DomainPerformance(d, nil)
	if perf.ROI != 0 {
		t.Errorf("ROI with zero cost = %v, want 0", perf.ROI)
	}
	if perf.Profit != 100 {
		t.Errorf("Profit = %v, want 100", perf.Profit)
	}
}

func TestDomainPerformances_Order(t *testing.T) {
	domains := []contracts.Domain{
		{ID: "a", PurchaseCost: 10},
		{ID: "b", PurchaseCost: 20},
	}

	results := DomainPerformances(domains, nil)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Domain.ID != "a" || results[1].Domain.ID != "b" {
		t.Error("results should preserve input order")
	}
}
