package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domainfolio/backend/internal/contracts"
	"github.com/domainfolio/backend/pkg/config"
	"github.com/domainfolio/backend/pkg/logger"
	"github.com/domainfolio/backend/pkg/redis"
)

type fakeDomainSource struct {
	domains []contracts.Domain
	calls   int
}

func (f *fakeDomainSource) List(ctx context.Context, status contracts.DomainStatus) ([]contracts.Domain, error) {
	f.calls++
	return f.domains, nil
}

type fakeTransactionSource struct {
	transactions []contracts.Transaction
}

func (f *fakeTransactionSource) List(ctx context.Context) ([]contracts.Transaction, error) {
	return f.transactions, nil
}

func newTestService(t *testing.T, ds DomainSource, ts TransactionSource) *Service {
	t.Helper()

	cfg := &config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}
	cfg.Redis.Enabled = false

	client, err := redis.New(cfg)
	require.NoError(t, err)

	svc := NewService(ds, ts, redis.NewCache(client, "test"), logger.New(cfg), 0.02, time.Minute)
	svc.now = func() time.Time {
		return time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestPortfolioReport(t *testing.T) {
	price := 300.0
	saleDate := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	ds := &fakeDomainSource{domains: []contracts.Domain{
		{
			ID: "d1", Name: "example.com", Status: contracts.StatusSold,
			PurchaseCost: 100, RenewalCost: 20, RenewalCount: 2,
			PurchaseDate: saleDate.AddDate(-1, 0, 0),
			SaleDate:     &saleDate, SalePrice: &price,
		},
	}}
	ts := &fakeTransactionSource{transactions: []contracts.Transaction{
		{ID: "t1", DomainID: "d1", Type: contracts.TxSell, Amount: 300, Date: saleDate},
	}}

	svc := newTestService(t, ds, ts)

	report, err := svc.PortfolioReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.DomainCount)
	assert.Equal(t, 140.0, report.Basic.TotalInvestment)
	assert.Equal(t, 300.0, report.Basic.TotalRevenue)
	assert.Len(t, report.MonthlyRevenue, 12)
	assert.Equal(t, 100.0, report.Advanced.WinRate)
}

func TestPerformances(t *testing.T) {
	estimate := 250.0
	ds := &fakeDomainSource{domains: []contracts.Domain{
		{ID: "d1", PurchaseCost: 100, EstimatedValue: &estimate},
	}}
	svc := newTestService(t, ds, &fakeTransactionSource{})

	perfs, err := svc.Performances(context.Background())
	require.NoError(t, err)

	require.Len(t, perfs, 1)
	assert.Equal(t, 250.0, perfs[0].Revenue)
	assert.Equal(t, 150.0, perfs[0].Profit)
}

func TestInvalidateIsSafeWithoutRedis(t *testing.T) {
	svc := newTestService(t, &fakeDomainSource{}, &fakeTransactionSource{})

	// Disabled cache: invalidation is a no-op, not an error
	svc.Invalidate(context.Background())

	_, err := svc.PortfolioReport(context.Background())
	require.NoError(t, err)
}
