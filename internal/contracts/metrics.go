package contracts

import "time"

// RiskLevel is the coarse risk classification of a portfolio.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// BasicFinancialMetrics are the headline portfolio figures.
// TotalRevenue is strictly the sum of sell-transaction net amounts; it is
// a different sum than adding up per-domain revenue (which falls back to
// sale price and estimated value) and the two need not reconcile.
type BasicFinancialMetrics struct {
	TotalInvestment float64 `json:"total_investment"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalProfit     float64 `json:"total_profit"`
	ROI             float64 `json:"roi"`
	ProfitMargin    float64 `json:"profit_margin"`
}

// AdvancedFinancialMetrics are the risk and performance figures derived
// from the per-domain results and the trailing monthly revenue series.
type AdvancedFinancialMetrics struct {
	AnnualizedReturn float64 `json:"annualized_return"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	Volatility       float64 `json:"volatility"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	WinRate          float64 `json:"win_rate"`
	AvgHoldingPeriod float64 `json:"avg_holding_period"` // days

	BestPerformer  *DomainPerformance `json:"best_performer,omitempty"`
	WorstPerformer *DomainPerformance `json:"worst_performer,omitempty"`

	RiskLevel RiskLevel `json:"risk_level"`
}

// DomainPerformance is the per-domain profitability record.
type DomainPerformance struct {
	Domain    Domain  `json:"domain"`
	TotalCost float64 `json:"total_cost"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	ROI       float64 `json:"roi"`
}

// MonthlyRevenuePoint is one bucket of the trailing revenue series.
type MonthlyRevenuePoint struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// PortfolioReport bundles everything a reporting view renders.
type PortfolioReport struct {
	GeneratedAt    time.Time                `json:"generated_at"`
	Basic          BasicFinancialMetrics    `json:"basic"`
	Advanced       AdvancedFinancialMetrics `json:"advanced"`
	MonthlyRevenue []MonthlyRevenuePoint    `json:"monthly_revenue"`
	DomainCount    int                      `json:"domain_count"`
}
