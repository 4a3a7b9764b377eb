// Package domains persists domain-name assets. The metrics engine never
// touches this layer; callers fetch slices here and pass them in.
package domains

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/domainfolio/backend/internal/contracts"
)

// ErrNotFound is returned when no domain matches the requested id.
var ErrNotFound = errors.New("domain not found")

// Repository handles domain persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new domain repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const domainColumns = `
	id, name, status,
	purchase_cost, renewal_cost, renewal_cycle, renewal_count,
	purchase_date, expiry_date, sale_date,
	sale_price, platform_fee, estimated_value,
	created_at, updated_at
`

// Create inserts a new domain and returns it with timestamps set.
func (r *Repository) Create(ctx context.Context, d *contracts.Domain) error {
	query := `
		INSERT INTO domains (
			id, name, status,
			purchase_cost, renewal_cost, renewal_cycle, renewal_count,
			purchase_date, expiry_date, sale_date,
			sale_price, platform_fee, estimated_value,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		d.ID, d.Name, d.Status,
		d.PurchaseCost, d.RenewalCost, d.RenewalCycle, d.RenewalCount,
		d.PurchaseDate, d.ExpiryDate, d.SaleDate,
		d.SalePrice, d.PlatformFee, d.EstimatedValue,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert domain: %w", err)
	}

	return nil
}

// GetByID retrieves a domain by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*contracts.Domain, error) {
	query := `SELECT ` + domainColumns + ` FROM domains WHERE id = $1`

	d, err := scanDomain(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}

	return d, nil
}

// List retrieves all domains, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status contracts.DomainStatus) ([]contracts.Domain, error) {
	query := `SELECT ` + domainColumns + ` FROM domains`
	args := []interface{}{}

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY purchase_date DESC, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	domains := make([]contracts.Domain, 0)
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return domains, nil
}

// Update rewrites a domain's mutable fields.
func (r *Repository) Update(ctx context.Context, d *contracts.Domain) error {
	query := `
		UPDATE domains SET
			name = $2, status = $3,
			purchase_cost = $4, renewal_cost = $5, renewal_cycle = $6, renewal_count = $7,
			purchase_date = $8, expiry_date = $9, sale_date = $10,
			sale_price = $11, platform_fee = $12, estimated_value = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		d.ID, d.Name, d.Status,
		d.PurchaseCost, d.RenewalCost, d.RenewalCycle, d.RenewalCount,
		d.PurchaseDate, d.ExpiryDate, d.SaleDate,
		d.SalePrice, d.PlatformFee, d.EstimatedValue,
	)
	if err != nil {
		return fmt.Errorf("failed to update domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a domain and its transactions.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE domain_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete domain transactions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateEstimatedValue stores a freshly fetched appraisal.
func (r *Repository) UpdateEstimatedValue(ctx context.Context, id string, value float64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE domains SET estimated_value = $2, updated_at = NOW() WHERE id = $1`,
		id, value,
	)
	if err != nil {
		return fmt.Errorf("failed to update estimated value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListExpiring returns non-disposed domains whose expiry date falls before
// the cutoff, soonest first.
func (r *Repository) ListExpiring(ctx context.Context, cutoff time.Time) ([]contracts.Domain, error) {
	query := `SELECT ` + domainColumns + `
		FROM domains
		WHERE status IN ('active', 'for_sale') AND expiry_date <= $1
		ORDER BY expiry_date
	`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring domains: %w", err)
	}
	defer rows.Close()

	domains := make([]contracts.Domain, 0)
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return domains, nil
}

// MarkExpired flips lapsed active/for_sale domains to expired and returns
// how many changed. The transition is one-way.
func (r *Repository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE domains SET status = 'expired', updated_at = NOW()
		WHERE status IN ('active', 'for_sale') AND expiry_date < $1
	`, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired domains: %w", err)
	}

	return tag.RowsAffected(), nil
}

// scanDomain reads one domain row.
func scanDomain(row pgx.Row) (*contracts.Domain, error) {
	var d contracts.Domain
	err := row.Scan(
		&d.ID, &d.Name, &d.Status,
		&d.PurchaseCost, &d.RenewalCost, &d.RenewalCycle, &d.RenewalCount,
		&d.PurchaseDate, &d.ExpiryDate, &d.SaleDate,
		&d.SalePrice, &d.PlatformFee, &d.EstimatedValue,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
