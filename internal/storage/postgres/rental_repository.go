package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

type RentalRepository struct {
	pool *pgxpool.Pool
}

func NewRentalRepository(pool *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{pool: pool}
}

func (r *RentalRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RentalRepository) GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error) {
	return getHoldForUpdate(ctx, r.queryRow, holdID)
}

func (r *RentalRepository) CreateRental(ctx context.Context, rental domain.Rental) error {
	const stmt = `
INSERT INTO rentals (id, tenant_id, status, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, rental.ID, rental.TenantID, rental.Status, rental.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create rental: %w", err)
	}
	return nil
}

func (r *RentalRepository) AddRentalItem(ctx context.Context, item domain.RentalItem) error {
	const stmt = `
INSERT INTO rental_items (id, rental_id, product_id, quantity, starts_at, ends_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt, item.ID, item.RentalID, item.ProductID, item.Quantity, item.StartsAt, item.EndsAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("add rental item: %w", err)
	}
	return nil
}

func (r *RentalRepository) DeleteHold(ctx context.Context, holdID string) (bool, error) {
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

func (r *RentalRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RentalRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
