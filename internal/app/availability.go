package app

import (
	"context"
	"time"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

// capacityReader is the read surface shared by the availability service and
// the hold lifecycle's in-transaction capacity check.
type capacityReader interface {
	SumOverlappingHolds(ctx context.Context, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error)
	SumOverlappingRentals(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error)
}

// availableQuantity computes free capacity for a product over [startsAt, endsAt):
// total quantity minus overlapping non-cancelled rentals minus overlapping
// non-expired holds (optionally excluding one hold, for renewals). The result
// may be negative; callers decide how to treat that.
func availableQuantity(ctx context.Context, r capacityReader, product domain.Product, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error) {
	heldQty, err := r.SumOverlappingHolds(ctx, product.TenantID, product.ID, startsAt, endsAt, now, excludeHoldID)
	if err != nil {
		return 0, err
	}
	rentedQty, err := r.SumOverlappingRentals(ctx, product.TenantID, product.ID, startsAt, endsAt)
	if err != nil {
		return 0, err
	}
	return product.TotalQuantity - rentedQty - heldQty, nil
}

type AvailabilityRepository interface {
	GetProduct(ctx context.Context, tenantID, productID string) (domain.Product, error)
	SumOverlappingHolds(ctx context.Context, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error)
	SumOverlappingRentals(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error)
}

type AvailabilityService struct {
	repo  AvailabilityRepository
	clock clock.Clock
}

func NewAvailabilityService(repo AvailabilityRepository, clk clock.Clock) *AvailabilityService {
	return &AvailabilityService{
		repo:  repo,
		clock: clk,
	}
}

// AvailableQuantity answers "how many units are free for this window right
// now". It is a plain read against current state; no snapshot isolation is
// implied and the result may be negative when the product is oversubscribed.
func (s *AvailabilityService) AvailableQuantity(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error) {
	if !endsAt.After(startsAt) {
		return 0, domain.ErrInvalidRange
	}

	product, err := s.repo.GetProduct(ctx, tenantID, productID)
	if err != nil {
		return 0, err
	}
	return availableQuantity(ctx, s.repo, product, startsAt, endsAt, s.clock.Now(), "")
}
