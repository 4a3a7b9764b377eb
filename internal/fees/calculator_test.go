package fees

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domainfolio/backend/internal/contracts"
)

func TestStandard_RoundTrip(t *testing.T) {
	// sellerNetAmount must come back as exactly the requested seller amount
	for _, seller := range []float64{0, 100, 1000, 49999.99} {
		for _, rate := range []float64{0, 0.05, 0.15, 0.5, 0.9} {
			r := rate
			result, err := CustomerTotal(Params{
				SellerAmount: seller,
				FeeType:      contracts.FeeStandard,
				Rate:         &r,
			})
			require.NoError(t, err)
			assert.Equal(t, seller, result.SellerNetAmount)
			assert.InDelta(t, seller+result.PlatformFee, result.CustomerTotalAmount, 1e-9)
		}
	}
}

func TestStandard_DefaultRate(t *testing.T) {
	result, err := CustomerTotal(Params{
		SellerAmount: 850,
		FeeType:      contracts.FeeStandard,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.15, result.PlatformFeeRate)
	assert.InDelta(t, 1000, result.CustomerTotalAmount, 1e-9)
	assert.InDelta(t, 150, result.PlatformFee, 1e-9)
}

func TestAfternic_TierBoundaries(t *testing.T) {
	tests := []struct {
		period   int
		wantRate float64
	}{
		{1, 0},
		{12, 0},
		{13, 0.10},
		{24, 0.10},
		{25, 0.20},
		{36, 0.20},
		{37, 0.30},
		{60, 0.30},
		{61, 0.30}, // clamped
	}

	for _, tt := range tests {
		result, err := CustomerTotal(Params{
			SellerAmount:      1000,
			FeeType:           contracts.FeeAfternicInstallment,
			InstallmentPeriod: tt.period,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.wantRate, result.PlatformFeeRate, "period %d", tt.period)
	}
}

func TestAtom_SurchargeSplit(t *testing.T) {
	result, err := CustomerTotal(Params{
		SellerAmount:      1000,
		FeeType:           contracts.FeeAtomInstallment,
		InstallmentPeriod: 12,
	})
	require.NoError(t, err)

	// 12 periods is the 10% surcharge tier
	assert.Equal(t, 0.10, result.PlatformFeeRate)

	// Platform keeps exactly 35% of the surcharge
	assert.InDelta(t, result.Breakdown.SurchargeAmount*0.35, result.PlatformFee, 1e-9)

	// Seller's 65% share tops them up to exactly the requested amount
	assert.InDelta(t, 1000, result.SellerNetAmount, 1e-9)

	// base*(1+rate) is what the customer pays
	assert.InDelta(t, result.Breakdown.BaseAmount+result.Breakdown.SurchargeAmount, result.CustomerTotalAmount, 1e-9)
}

func TestAtom_TierBoundaries(t *testing.T) {
	tests := []struct {
		period   int
		wantRate float64
	}{
		{12, 0.10},
		{13, 0.15},
		{24, 0.15},
		{25, 0.20},
		{36, 0.20},
		{37, 0.25},
		{48, 0.25},
		{49, 0.25}, // clamped
	}

	for _, tt := range tests {
		result, err := CustomerTotal(Params{
			SellerAmount:      1000,
			FeeType:           contracts.FeeAtomInstallment,
			InstallmentPeriod: tt.period,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.wantRate, result.PlatformFeeRate, "period %d", tt.period)
	}
}

func TestSpaceship_FlatFivePercent(t *testing.T) {
	result, err := CustomerTotal(Params{
		SellerAmount: 950,
		FeeType:      contracts.FeeSpaceshipInstallment,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.05, result.PlatformFeeRate)
	assert.InDelta(t, 1000, result.CustomerTotalAmount, 1e-9)
	assert.Equal(t, 950.0, result.SellerNetAmount)
}

func TestEscrow_FlatFees(t *testing.T) {
	result, err := CustomerTotal(Params{
		SellerAmount:     1000,
		FeeType:          contracts.FeeEscrowInstallment,
		EscrowFee:        50,
		DomainHoldingFee: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, 1075.0, result.CustomerTotalAmount)
	assert.Equal(t, 75.0, result.PlatformFee)
	assert.InDelta(t, 0.0698, result.PlatformFeeRate, 1e-4)
	assert.Equal(t, 1000.0, result.SellerNetAmount)
}

func TestPaidToDate_UsesPaidPeriodsForTier(t *testing.T) {
	// A 36-period Afternic contract with only 10 periods paid bills at the
	// <=12 tier, not the contracted tier. The effective rate moves as more
	// periods are paid; that mirrors the platform's billing rules.
	params := Params{
		SellerAmount:      1000,
		FeeType:           contracts.FeeAfternicInstallment,
		InstallmentPeriod: 36,
		PaidPeriods:       10,
	}

	planned, err := CustomerTotal(params)
	require.NoError(t, err)
	paid, err := PaidToDate(params)
	require.NoError(t, err)

	assert.Equal(t, 0.20, planned.PlatformFeeRate)
	assert.Equal(t, 0.0, paid.PlatformFeeRate)

	// After 30 paid periods the same contract bills at the <=36 tier
	params.PaidPeriods = 30
	paid, err = PaidToDate(params)
	require.NoError(t, err)
	assert.Equal(t, 0.20, paid.PlatformFeeRate)
}

func TestUnsupportedFeeType(t *testing.T) {
	_, err := CustomerTotal(Params{
		SellerAmount: 1000,
		FeeType:      contracts.PlatformFeeType("dan_installment"),
	})
	require.Error(t, err)

	var unsupported *UnsupportedFeeTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, contracts.PlatformFeeType("dan_installment"), unsupported.Type)
	assert.Contains(t, err.Error(), "unsupported platform fee type")
}

func TestNegativeInputsNotRejected(t *testing.T) {
	// Range validation belongs to the data-entry layer, not the table
	result, err := CustomerTotal(Params{
		SellerAmount:      -100,
		FeeType:           contracts.FeeAfternicInstallment,
		InstallmentPeriod: -5,
	})
	require.NoError(t, err)
	assert.Equal(t, -100.0, result.SellerNetAmount)
}
