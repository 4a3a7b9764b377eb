package contracts

import "time"

// TransactionType classifies a cash movement tied to a domain.
type TransactionType string

const (
	TxBuy         TransactionType = "buy"
	TxRenew       TransactionType = "renew"
	TxSell        TransactionType = "sell"
	TxTransfer    TransactionType = "transfer"
	TxFee         TransactionType = "fee"
	TxMarketing   TransactionType = "marketing"
	TxAdvertising TransactionType = "advertising"
)

// PaymentPlan distinguishes lump-sum from installment sales.
type PaymentPlan string

const (
	PlanLumpSum     PaymentPlan = "lump_sum"
	PlanInstallment PaymentPlan = "installment"
)

// InstallmentStatus is the state of an installment plan.
type InstallmentStatus string

const (
	InstallmentActive    InstallmentStatus = "active"
	InstallmentCompleted InstallmentStatus = "completed"
	InstallmentCancelled InstallmentStatus = "cancelled"
	InstallmentPaused    InstallmentStatus = "paused"
)

// PlatformFeeType selects the fee regime applied to an installment sale.
type PlatformFeeType string

const (
	FeeStandard             PlatformFeeType = "standard"
	FeeAfternicInstallment  PlatformFeeType = "afternic_installment"
	FeeAtomInstallment      PlatformFeeType = "atom_installment"
	FeeSpaceshipInstallment PlatformFeeType = "spaceship_installment"
	FeeEscrowInstallment    PlatformFeeType = "escrow_installment"
)

// Transaction represents a dated cash movement tied to exactly one domain.
type Transaction struct {
	ID       string          `json:"id"`
	DomainID string          `json:"domain_id"`
	Type     TransactionType `json:"type"`
	Date     time.Time       `json:"date"`

	// Amount as recorded in Currency; BaseAmount is the converted value
	// in the reporting currency when an exchange rate was captured.
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty"`
	BaseAmount   *float64 `json:"base_amount,omitempty"`

	PlatformFee           *float64 `json:"platform_fee,omitempty"`
	PlatformFeePercentage *float64 `json:"platform_fee_percentage,omitempty"`

	// NetAmount must equal Amount - PlatformFee once computed, unless an
	// installment-fee calculation explicitly overrode it.
	NetAmount *float64 `json:"net_amount,omitempty"`

	// Installment extension (only when PaymentPlan = installment)
	PaymentPlan        PaymentPlan       `json:"payment_plan,omitempty"`
	InstallmentPeriod  int               `json:"installment_period,omitempty"`
	DownpaymentAmount  float64           `json:"downpayment_amount,omitempty"`
	InstallmentAmount  float64           `json:"installment_amount,omitempty"`
	FinalPaymentAmount float64           `json:"final_payment_amount,omitempty"`
	PaidPeriods        int               `json:"paid_periods,omitempty"`
	InstallmentStatus  InstallmentStatus `json:"installment_status,omitempty"`
	PlatformFeeType    PlatformFeeType   `json:"platform_fee_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NetValue resolves the cash value of the transaction: the recorded net
// amount when present, otherwise amount minus platform fee, otherwise the
// raw amount.
func (t *Transaction) NetValue() float64 {
	if t.NetAmount != nil {
		return *t.NetAmount
	}
	if t.PlatformFee != nil {
		return t.Amount - *t.PlatformFee
	}
	return t.Amount
}

// IsSale reports whether this transaction realizes revenue.
func (t *Transaction) IsSale() bool {
	return t.Type == TxSell
}
