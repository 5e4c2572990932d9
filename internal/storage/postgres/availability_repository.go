package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

// AvailabilityRepository serves the read path: plain queries against current
// state, no locks taken.
type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

func (r *AvailabilityRepository) GetProduct(ctx context.Context, tenantID, productID string) (domain.Product, error) {
	const query = `
SELECT id, tenant_id, name, total_quantity, created_at
FROM products
WHERE id = $1 AND tenant_id = $2`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, productID, tenantID).
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

func (r *AvailabilityRepository) SumOverlappingHolds(ctx context.Context, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error) {
	return sumOverlappingHolds(ctx, r.pool.QueryRow, tenantID, productID, startsAt, endsAt, now, excludeHoldID)
}

func (r *AvailabilityRepository) SumOverlappingRentals(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error) {
	return sumOverlappingRentals(ctx, r.pool.QueryRow, tenantID, productID, startsAt, endsAt)
}
