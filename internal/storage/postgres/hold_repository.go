package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

type HoldRepository struct {
	pool *pgxpool.Pool
}

func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

func (r *HoldRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetProductForUpdate locks the product row for the rest of the transaction,
// serializing concurrent hold writers per product.
func (r *HoldRepository) GetProductForUpdate(ctx context.Context, tenantID, productID string) (domain.Product, error) {
	const query = `
SELECT id, tenant_id, name, total_quantity, created_at
FROM products
WHERE id = $1 AND tenant_id = $2
FOR UPDATE`

	var p domain.Product
	err := r.queryRow(ctx, query, productID, tenantID).
		Scan(&p.ID, &p.TenantID, &p.Name, &p.TotalQuantity, &p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Product{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *HoldRepository) SumOverlappingHolds(ctx context.Context, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error) {
	return sumOverlappingHolds(ctx, r.queryRow, tenantID, productID, startsAt, endsAt, now, excludeHoldID)
}

func (r *HoldRepository) SumOverlappingRentals(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error) {
	return sumOverlappingRentals(ctx, r.queryRow, tenantID, productID, startsAt, endsAt)
}

func (r *HoldRepository) CreateHold(ctx context.Context, hold domain.Hold) error {
	const stmt = `
INSERT INTO holds (id, tenant_id, product_id, quantity, starts_at, ends_at, expires_at, customer_id, session_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		hold.ID,
		hold.TenantID,
		hold.ProductID,
		hold.Quantity,
		hold.StartsAt,
		hold.EndsAt,
		hold.ExpiresAt,
		hold.CustomerID,
		hold.SessionID,
		hold.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create hold: %w", err)
	}
	return nil
}

func (r *HoldRepository) GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	return getHoldForUpdate(ctx, r.queryRow, holdID)
}

// DeleteHold reports whether a row was actually removed; deleting a missing
// hold is not an error.
func (r *HoldRepository) DeleteHold(ctx context.Context, holdID string) (bool, error) {
	const stmt = `DELETE FROM holds WHERE id = $1`

	tag, err := r.exec(ctx, stmt, holdID)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("delete hold: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteExpired bulk-removes holds whose deadline has passed and returns the
// reclaimed count. Used by the sweeper.
func (r *HoldRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `DELETE FROM holds WHERE expires_at <= $1`

	tag, err := r.exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired holds: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *HoldRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *HoldRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
