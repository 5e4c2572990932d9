package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

// Overlap of two half-open ranges [a,b) and [c,d): a < d AND c < b.
// A hold ending exactly when the query window starts does not count.
const sumOverlappingHoldsQuery = `
SELECT COALESCE(SUM(quantity), 0)
FROM holds
WHERE tenant_id = $1 AND product_id = $2
  AND starts_at < $4 AND $3 < ends_at
  AND expires_at > $5
  AND id::text <> $6`

const sumOverlappingRentalsQuery = `
SELECT COALESCE(SUM(ri.quantity), 0)
FROM rental_items ri
JOIN rentals r ON r.id = ri.rental_id
WHERE r.tenant_id = $1 AND ri.product_id = $2
  AND r.status <> 'cancelled'
  AND ri.starts_at < $4 AND $3 < ri.ends_at`

func sumOverlappingHolds(ctx context.Context, queryRow rowQuerier, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error) {
	var total int
	err := queryRow(ctx, sumOverlappingHoldsQuery, tenantID, productID, startsAt, endsAt, now, excludeHoldID).Scan(&total)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum overlapping holds: %w", err)
	}
	return total, nil
}

func sumOverlappingRentals(ctx context.Context, queryRow rowQuerier, tenantID, productID string, startsAt, endsAt time.Time) (int, error) {
	var total int
	err := queryRow(ctx, sumOverlappingRentalsQuery, tenantID, productID, startsAt, endsAt).Scan(&total)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("sum overlapping rentals: %w", err)
	}
	return total, nil
}

func getHoldForUpdate(ctx context.Context, queryRow rowQuerier, holdID string) (domain.Hold, error) {
	const query = `
SELECT id, tenant_id, product_id, quantity, starts_at, ends_at, expires_at, customer_id, session_id, created_at
FROM holds
WHERE id = $1
FOR UPDATE`

	var h domain.Hold
	err := queryRow(ctx, query, holdID).Scan(
		&h.ID, &h.TenantID, &h.ProductID, &h.Quantity,
		&h.StartsAt, &h.EndsAt, &h.ExpiresAt,
		&h.CustomerID, &h.SessionID, &h.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Hold{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Hold{}, domain.ErrHoldNotFound
		}
		return domain.Hold{}, fmt.Errorf("get hold: %w", err)
	}
	return h, nil
}
