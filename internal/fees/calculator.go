// Package fees implements the platform installment-fee decision table:
// converting between what the seller nets from an installment sale and the
// gross amount the buyer pays, under the fee regimes the marketplaces
// actually bill. Pure arithmetic; the only failure mode is an unknown fee
// type, which must error rather than silently guess a rate.
package fees

import (
	"fmt"

	"github.com/domainfolio/backend/internal/contracts"
)

// DefaultStandardRate is the flat commission applied when the caller does
// not supply one.
const DefaultStandardRate = 0.15

// Atom splits its installment surcharge: the seller keeps 65%, the
// platform keeps the rest.
const atomSellerShare = 0.65

// UnsupportedFeeTypeError is returned for a fee type the table does not
// know. Guessing a fee rule would silently misstate money owed.
type UnsupportedFeeTypeError struct {
	Type contracts.PlatformFeeType
}

func (e *UnsupportedFeeTypeError) Error() string {
	return fmt.Sprintf("unsupported platform fee type: %q", e.Type)
}

// Params carries the inputs for one fee calculation. Negative amounts and
// periods are not rejected here; validation is a caller responsibility.
type Params struct {
	// SellerAmount is the amount the seller should net from the sale.
	SellerAmount float64

	FeeType contracts.PlatformFeeType

	// InstallmentPeriod is the contracted number of periods;
	// PaidPeriods is how many have actually been paid.
	InstallmentPeriod int
	PaidPeriods       int

	// Rate overrides the standard commission when non-nil.
	Rate *float64

	// Escrow-specific flat fees.
	EscrowFee        float64
	DomainHoldingFee float64
}

// Breakdown itemizes how the customer total decomposes.
type Breakdown struct {
	BaseAmount      float64 `json:"base_amount"`
	SurchargeAmount float64 `json:"surcharge_amount,omitempty"`
}

// Result is the outcome of a fee calculation.
type Result struct {
	CustomerTotalAmount float64   `json:"customer_total_amount"`
	PlatformFee         float64   `json:"platform_fee"`
	PlatformFeeRate     float64   `json:"platform_fee_rate"`
	SellerNetAmount     float64   `json:"seller_net_amount"`
	Breakdown           Breakdown `json:"breakdown"`
}

// CustomerTotal computes the gross amount the buyer pays for the planned
// installment sale. The fee tier is selected by the contracted
// installment period.
func CustomerTotal(p Params) (*Result, error) {
	return calculate(p, p.InstallmentPeriod)
}

// PaidToDate computes the same figures for the periods actually paid.
// The tier is selected by paid periods instead of the contracted period,
// so the effective rate can change as more periods are paid. That mirrors
// the platforms' real billing tiers and is preserved literally.
func PaidToDate(p Params) (*Result, error) {
	return calculate(p, p.PaidPeriods)
}

func calculate(p Params, period int) (*Result, error) {
	switch p.FeeType {
	case contracts.FeeStandard:
		rate := DefaultStandardRate
		if p.Rate != nil {
			rate = *p.Rate
		}
		return flatRate(p.SellerAmount, rate), nil

	case contracts.FeeAfternicInstallment:
		return flatRate(p.SellerAmount, afternicRate(period)), nil

	case contracts.FeeAtomInstallment:
		return atomSurcharge(p.SellerAmount, atomRate(period)), nil

	case contracts.FeeSpaceshipInstallment:
		return flatRate(p.SellerAmount, 0.05), nil

	case contracts.FeeEscrowInstallment:
		return escrowFlat(p.SellerAmount, p.EscrowFee+p.DomainHoldingFee), nil

	default:
		return nil, &UnsupportedFeeTypeError{Type: p.FeeType}
	}
}

// afternicRate is Afternic's commission as a step function of the
// installment period.
func afternicRate(period int) float64 {
	switch {
	case period <= 12:
		return 0
	case period <= 24:
		return 0.10
	case period <= 36:
		return 0.20
	case period <= 60:
		return 0.30
	default:
		return 0.30
	}
}

// atomRate is Atom's surcharge as a step function of the installment
// period.
func atomRate(period int) float64 {
	switch {
	case period <= 12:
		return 0.10
	case period <= 24:
		return 0.15
	case period <= 36:
		return 0.20
	case period <= 48:
		return 0.25
	default:
		return 0.25
	}
}

// flatRate grosses up the seller amount so the platform's cut of the
// customer total leaves the seller whole: customerTotal = seller/(1-rate).
func flatRate(seller, rate float64) *Result {
	customerTotal := seller / (1 - rate)
	fee := customerTotal - seller

	return &Result{
		CustomerTotalAmount: customerTotal,
		PlatformFee:         fee,
		PlatformFeeRate:     rate,
		SellerNetAmount:     seller,
		Breakdown:           Breakdown{BaseAmount: seller},
	}
}

// atomSurcharge solves the base sale amount so that the seller's share of
// the surcharge tops them up to exactly SellerAmount:
// seller = base + surcharge*0.65, surcharge = base*rate.
func atomSurcharge(seller, rate float64) *Result {
	base := seller / (1 + rate*atomSellerShare)
	surcharge := base * rate

	return &Result{
		CustomerTotalAmount: base + surcharge,
		PlatformFee:         surcharge * (1 - atomSellerShare),
		PlatformFeeRate:     rate,
		SellerNetAmount:     base + surcharge*atomSellerShare,
		Breakdown: Breakdown{
			BaseAmount:      base,
			SurchargeAmount: surcharge,
		},
	}
}

// escrowFlat adds flat escrow and holding fees on top of the seller
// amount; the reported rate is the effective fee fraction of the total.
func escrowFlat(seller, fee float64) *Result {
	customerTotal := seller + fee

	rate := 0.0
	if customerTotal != 0 {
		rate = fee / customerTotal
	}

	return &Result{
		CustomerTotalAmount: customerTotal,
		PlatformFee:         fee,
		PlatformFeeRate:     rate,
		SellerNetAmount:     seller,
		Breakdown:           Breakdown{BaseAmount: seller},
	}
}
