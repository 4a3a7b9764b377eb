package metrics

import (
	"github.com/domainfolio/backend/internal/contracts"
)

// DomainPerformance maps one domain and the full transaction list to its
// profitability record. Transactions are filtered to the domain internally.
func DomainPerformance(d contracts.Domain, transactions []contracts.Transaction) contracts.DomainPerformance {
	totalCost := d.HoldingCost()
	revenue := domainRevenue(&d, transactions)
	profit := revenue - totalCost

	roi := 0.0
	if totalCost > 0 {
		roi = profit / totalCost * 100
	}

	return contracts.DomainPerformance{
		Domain:    d,
		TotalCost: totalCost,
		Revenue:   revenue,
		Profit:    profit,
		ROI:       roi,
	}
}

// DomainPerformances computes the per-domain records for a whole portfolio.
func DomainPerformances(domains []contracts.Domain, transactions []contracts.Transaction) []contracts.DomainPerformance {
	results := make([]contracts.DomainPerformance, 0, len(domains))
	for i := range domains {
		results = append(results, DomainPerformance(domains[i], transactions))
	}
	return results
}

// domainRevenue resolves a domain's revenue through the three-branch
// precedence chain. The order is contractual: a realized sale price wins
// over an estimate, and an estimate wins over summed sell transactions.
func domainRevenue(d *contracts.Domain, transactions []contracts.Transaction) float64 {
	// 1. Realized sale price
	if d.SalePrice != nil {
		return *d.SalePrice
	}

	// 2. Estimated value
	if d.EstimatedValue != nil {
		return *d.EstimatedValue
	}

	// 3. Summed sell-transaction net amounts
	var sum float64
	for i := range transactions {
		tx := &transactions[i]
		if tx.DomainID == d.ID && tx.IsSale() {
			sum += tx.NetValue()
		}
	}
	return sum
}
