// Package transactions persists the dated cash movements tied to domains.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/domainfolio/backend/internal/contracts"
)

// ErrNotFound is returned when no transaction matches the requested id.
var ErrNotFound = errors.New("transaction not found")

// Repository handles transaction persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new transaction repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const txColumns = `
	id, domain_id, type, date,
	amount, currency, exchange_rate, base_amount,
	platform_fee, platform_fee_percentage, net_amount,
	payment_plan, installment_period, downpayment_amount,
	installment_amount, final_payment_amount, paid_periods,
	installment_status, platform_fee_type,
	created_at, updated_at
`

// Create inserts a new transaction.
func (r *Repository) Create(ctx context.Context, t *contracts.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, domain_id, type, date,
			amount, currency, exchange_rate, base_amount,
			platform_fee, platform_fee_percentage, net_amount,
			payment_plan, installment_period, downpayment_amount,
			installment_amount, final_payment_amount, paid_periods,
			installment_status, platform_fee_type,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		t.ID, t.DomainID, t.Type, t.Date,
		t.Amount, t.Currency, t.ExchangeRate, t.BaseAmount,
		t.PlatformFee, t.PlatformFeePercentage, t.NetAmount,
		t.PaymentPlan, t.InstallmentPeriod, t.DownpaymentAmount,
		t.InstallmentAmount, t.FinalPaymentAmount, t.PaidPeriods,
		t.InstallmentStatus, t.PlatformFeeType,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*contracts.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

// List retrieves all transactions, newest first.
func (r *Repository) List(ctx context.Context) ([]contracts.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions ORDER BY date DESC, id`
	return r.queryMany(ctx, query)
}

// ListByDomain retrieves the transactions for one domain, newest first.
func (r *Repository) ListByDomain(ctx context.Context, domainID string) ([]contracts.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE domain_id = $1 ORDER BY date DESC, id`
	return r.queryMany(ctx, query, domainID)
}

// ListByPeriod retrieves transactions dated within [from, to].
func (r *Repository) ListByPeriod(ctx context.Context, from, to time.Time) ([]contracts.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE date >= $1 AND date <= $2 ORDER BY date, id`
	return r.queryMany(ctx, query, from, to)
}

// Update rewrites a transaction's mutable fields.
func (r *Repository) Update(ctx context.Context, t *contracts.Transaction) error {
	query := `
		UPDATE transactions SET
			domain_id = $2, type = $3, date = $4,
			amount = $5, currency = $6, exchange_rate = $7, base_amount = $8,
			platform_fee = $9, platform_fee_percentage = $10, net_amount = $11,
			payment_plan = $12, installment_period = $13, downpayment_amount = $14,
			installment_amount = $15, final_payment_amount = $16, paid_periods = $17,
			installment_status = $18, platform_fee_type = $19,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.DomainID, t.Type, t.Date,
		t.Amount, t.Currency, t.ExchangeRate, t.BaseAmount,
		t.PlatformFee, t.PlatformFeePercentage, t.NetAmount,
		t.PaymentPlan, t.InstallmentPeriod, t.DownpaymentAmount,
		t.InstallmentAmount, t.FinalPaymentAmount, t.PaidPeriods,
		t.InstallmentStatus, t.PlatformFeeType,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) queryMany(ctx context.Context, query string, args ...interface{}) ([]contracts.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]contracts.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return transactions, nil
}

// scanTransaction reads one transaction row.
func scanTransaction(row pgx.Row) (*contracts.Transaction, error) {
	var t contracts.Transaction
	err := row.Scan(
		&t.ID, &t.DomainID, &t.Type, &t.Date,
		&t.Amount, &t.Currency, &t.ExchangeRate, &t.BaseAmount,
		&t.PlatformFee, &t.PlatformFeePercentage, &t.NetAmount,
		&t.PaymentPlan, &t.InstallmentPeriod, &t.DownpaymentAmount,
		&t.InstallmentAmount, &t.FinalPaymentAmount, &t.PaidPeriods,
		&t.InstallmentStatus, &t.PlatformFeeType,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
