package contracts

import "time"

// DomainStatus is the lifecycle state of a domain asset.
// Transitions are monotonic: active → for_sale → sold, or active → expired.
type DomainStatus string

const (
	StatusActive  DomainStatus = "active"
	StatusForSale DomainStatus = "for_sale"
	StatusSold    DomainStatus = "sold"
	StatusExpired DomainStatus = "expired"
)

// Domain represents a held or disposed domain-name asset.
// Optional fields are pointers: nil means the source never recorded a value,
// which is different from zero.
type Domain struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Status DomainStatus `json:"status"`

	// Commercial terms
	PurchaseCost float64 `json:"purchase_cost"`
	RenewalCost  float64 `json:"renewal_cost"`
	RenewalCycle int     `json:"renewal_cycle"` // years
	RenewalCount int     `json:"renewal_count"` // times renewed

	// Lifecycle dates
	PurchaseDate time.Time  `json:"purchase_date"`
	ExpiryDate   time.Time  `json:"expiry_date"`
	SaleDate     *time.Time `json:"sale_date,omitempty"`

	// Disposal terms (present only when sold)
	SalePrice   *float64 `json:"sale_price,omitempty"`
	PlatformFee *float64 `json:"platform_fee,omitempty"`

	// Valuation (manual or externally fetched)
	EstimatedValue *float64 `json:"estimated_value,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HoldingCost returns the total cost of holding the domain:
// purchase cost plus every renewal paid to date. This is the basis for
// all cost-side calculations. No input validation here: range checks are
// the data-entry layer's job.
func (d *Domain) HoldingCost() float64 {
	return d.PurchaseCost + float64(d.RenewalCount)*d.RenewalCost
}

// IsSold reports whether the domain has been disposed of.
func (d *Domain) IsSold() bool {
	return d.Status == StatusSold
}

// HoldingDays returns the number of days between purchase and sale.
// Zero when the domain has no sale date.
func (d *Domain) HoldingDays() float64 {
	if d.SaleDate == nil {
		return 0
	}
	return d.SaleDate.Sub(d.PurchaseDate).Hours() / 24
}
