package metrics

import (
	"time"

	"github.com/domainfolio/backend/internal/contracts"
)

// monthsBack is the length of the trailing revenue series.
const monthsBack = 12

// MonthlyRevenue buckets sell-transaction net amounts into the trailing
// twelve calendar months ending at asOf (inclusive). Months with no sales
// stay at zero.
func MonthlyRevenue(transactions []contracts.Transaction, asOf time.Time) []contracts.MonthlyRevenuePoint {
	series := make([]contracts.MonthlyRevenuePoint, monthsBack)

	// Oldest bucket first: asOf's month minus 11 .. asOf's month
	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsBack - 1), 0)
	for i := 0; i < monthsBack; i++ {
		series[i].Month = start.AddDate(0, i, 0).Format("2006-01")
	}

	for i := range transactions {
		tx := &transactions[i]
		if !tx.IsSale() {
			continue
		}
		key := tx.Date.Format("2006-01")
		for j := range series {
			if series[j].Month == key {
				series[j].Revenue += tx.NetValue()
				break
			}
		}
	}

	return series
}

// revenueValues flattens the series to the raw monthly amounts.
func revenueValues(series []contracts.MonthlyRevenuePoint) []float64 {
	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Revenue
	}
	return values
}

// CalculateBasic folds per-domain costs and period sell revenue into the
// headline figures. Total revenue is strictly the sum of sell-transaction
// net amounts, which is a deliberately different sum than per-domain
// revenue with its sale-price/estimate fallback.
func CalculateBasic(domains []contracts.Domain, transactions []contracts.Transaction) contracts.BasicFinancialMetrics {
	var totalInvestment float64
	for i := range domains {
		totalInvestment += domains[i].HoldingCost()
	}

	var totalRevenue float64
	for i := range transactions {
		if transactions[i].IsSale() {
			totalRevenue += transactions[i].NetValue()
		}
	}

	profit := totalRevenue - totalInvestment

	return contracts.BasicFinancialMetrics{
		TotalInvestment: totalInvestment,
		TotalRevenue:    totalRevenue,
		TotalProfit:     profit,
		ROI:             ROI(totalInvestment, totalRevenue),
		ProfitMargin:    ProfitMargin(totalRevenue, totalInvestment),
	}
}

// CalculateAdvanced derives the risk and performance figures from the
// per-domain results and the trailing monthly revenue series.
//
// Volatility and max drawdown are computed over the raw monthly revenue
// amounts, mirroring the upstream reporting semantics. Best and worst
// performer are picked by ROI with strict comparisons, so the first domain
// encountered in input order wins ties.
func CalculateAdvanced(
	domains []contracts.Domain,
	transactions []contracts.Transaction,
	riskFreeRate float64,
	asOf time.Time,
) contracts.AdvancedFinancialMetrics {
	basic := CalculateBasic(domains, transactions)
	series := MonthlyRevenue(transactions, asOf)
	monthly := revenueValues(series)

	volatility := Volatility(monthly)
	maxDD := MaxDrawdown(monthly)

	annualized := AnnualizedReturn(basic.TotalInvestment, basic.TotalRevenue, elapsedYears(domains, asOf))

	adv := contracts.AdvancedFinancialMetrics{
		AnnualizedReturn: annualized,
		SharpeRatio:      SharpeRatio(annualized, riskFreeRate, volatility),
		Volatility:       volatility,
		MaxDrawdown:      maxDD,
		WinRate:          WinRate(domains),
		AvgHoldingPeriod: AvgHoldingPeriod(domains),
		RiskLevel:        ClassifyRisk(volatility, maxDD),
	}

	performances := DomainPerformances(domains, transactions)
	for i := range performances {
		p := &performances[i]
		if adv.BestPerformer == nil || p.ROI > adv.BestPerformer.ROI {
			adv.BestPerformer = p
		}
		if adv.WorstPerformer == nil || p.ROI < adv.WorstPerformer.ROI {
			adv.WorstPerformer = p
		}
	}

	return adv
}

// CalculatePortfolio produces the full report: basic + advanced metrics
// and the monthly revenue series the advanced figures were derived from.
func CalculatePortfolio(
	domains []contracts.Domain,
	transactions []contracts.Transaction,
	riskFreeRate float64,
	asOf time.Time,
) *contracts.PortfolioReport {
	return &contracts.PortfolioReport{
		GeneratedAt:    asOf,
		Basic:          CalculateBasic(domains, transactions),
		Advanced:       CalculateAdvanced(domains, transactions, riskFreeRate, asOf),
		MonthlyRevenue: MonthlyRevenue(transactions, asOf),
		DomainCount:    len(domains),
	}
}

// elapsedYears returns the span from the oldest domain purchase to asOf.
func elapsedYears(domains []contracts.Domain, asOf time.Time) float64 {
	if len(domains) == 0 {
		return 0
	}

	oldest := domains[0].PurchaseDate
	for i := range domains[1:] {
		if domains[i+1].PurchaseDate.Before(oldest) {
			oldest = domains[i+1].PurchaseDate
		}
	}

	return asOf.Sub(oldest).Hours() / 24 / 365.25
}
