package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

type HoldRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProductForUpdate(ctx context.Context, tenantID, productID string) (domain.Product, error)
	SumOverlappingHolds(ctx context.Context, tenantID, productID string, startsAt, endsAt, now time.Time, excludeHoldID string) (int, error)
	SumOverlappingRentals(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error)
	CreateHold(ctx context.Context, hold domain.Hold) error
	GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	DeleteHold(ctx context.Context, holdID string) (bool, error)
}

const (
	minHoldTTL     = 5 * time.Minute
	maxHoldTTL     = 30 * time.Minute
	defaultHoldTTL = 10 * time.Minute
)

type HoldService struct {
	repo  HoldRepository
	clock clock.Clock
}

func NewHoldService(repo HoldRepository, clk clock.Clock) *HoldService {
	return &HoldService{
		repo:  repo,
		clock: clk,
	}
}

type CreateHoldInput struct {
	TenantID   string
	ProductID  string
	Quantity   int
	StartsAt   time.Time
	EndsAt     time.Time
	TTLMinutes *int
	CustomerID *string
	SessionID  *string
}

// CreateHold claims quantity of a product for [StartsAt, EndsAt) until the
// TTL deadline. The capacity check and the insert run in one transaction with
// the product row locked, so two contenders for the last unit cannot both
// succeed.
func (s *HoldService) CreateHold(ctx context.Context, in CreateHoldInput) (domain.Hold, error) {
	if in.Quantity < 1 {
		return domain.Hold{}, domain.ErrInvalidQuantity
	}
	if !in.EndsAt.After(in.StartsAt) {
		return domain.Hold{}, domain.ErrInvalidRange
	}

	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetProductForUpdate(txCtx, in.TenantID, in.ProductID)
		if err != nil {
			return err
		}

		available, err := availableQuantity(txCtx, s.repo, product, in.StartsAt, in.EndsAt, now, "")
		if err != nil {
			return err
		}
		if in.Quantity > available {
			return domain.ErrInsufficientCapacity
		}

		hold := domain.Hold{
			ID:         uuid.NewString(),
			TenantID:   in.TenantID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			StartsAt:   in.StartsAt.UTC(),
			EndsAt:     in.EndsAt.UTC(),
			ExpiresAt:  now.Add(holdTTL(in.TTLMinutes)),
			CustomerID: in.CustomerID,
			SessionID:  in.SessionID,
			CreatedAt:  now,
		}

		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			return err
		}

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

type RenewHoldInput struct {
	HoldID     string
	StartsAt   *time.Time
	EndsAt     *time.Time
	Quantity   *int
	TTLMinutes *int
}

// RenewHold replaces an existing hold with a new one (new id, fresh TTL),
// re-validating capacity as if the old hold did not exist. Modeled as
// delete+insert so a crash mid-operation never extends the original lease.
// On a failed check the original hold is left untouched.
func (s *HoldService) RenewHold(ctx context.Context, in RenewHoldInput) (domain.Hold, error) {
	now := s.clock.Now()
	var result domain.Hold

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		old, err := s.repo.GetHoldForUpdate(txCtx, in.HoldID)
		if err != nil {
			return err
		}
		if old.Expired(now) {
			return domain.ErrHoldExpired
		}

		startsAt, endsAt, quantity := old.StartsAt, old.EndsAt, old.Quantity
		if in.StartsAt != nil {
			startsAt = in.StartsAt.UTC()
		}
		if in.EndsAt != nil {
			endsAt = in.EndsAt.UTC()
		}
		if in.Quantity != nil {
			quantity = *in.Quantity
		}
		if quantity < 1 {
			return domain.ErrInvalidQuantity
		}
		if !endsAt.After(startsAt) {
			return domain.ErrInvalidRange
		}

		product, err := s.repo.GetProductForUpdate(txCtx, old.TenantID, old.ProductID)
		if err != nil {
			return err
		}

		available, err := availableQuantity(txCtx, s.repo, product, startsAt, endsAt, now, old.ID)
		if err != nil {
			return err
		}
		if quantity > available {
			return domain.ErrInsufficientCapacity
		}

		if _, err := s.repo.DeleteHold(txCtx, old.ID); err != nil {
			return err
		}

		hold := domain.Hold{
			ID:         uuid.NewString(),
			TenantID:   old.TenantID,
			ProductID:  old.ProductID,
			Quantity:   quantity,
			StartsAt:   startsAt,
			EndsAt:     endsAt,
			ExpiresAt:  now.Add(holdTTL(in.TTLMinutes)),
			CustomerID: old.CustomerID,
			SessionID:  old.SessionID,
			CreatedAt:  now,
		}

		if err := s.repo.CreateHold(txCtx, hold); err != nil {
			return err
		}

		result = hold
		return nil
	})
	if err != nil {
		return domain.Hold{}, err
	}
	return result, nil
}

// ReleaseHold deletes a hold. Releasing a missing, already-released or
// already-swept hold is not an error.
func (s *HoldService) ReleaseHold(ctx context.Context, holdID string) error {
	_, err := s.repo.DeleteHold(ctx, holdID)
	if err == domain.ErrInvalidID {
		return nil
	}
	return err
}

// holdTTL clamps a requested TTL into [minHoldTTL, maxHoldTTL]; nil means the
// default lease length.
func holdTTL(minutes *int) time.Duration {
	if minutes == nil {
		return defaultHoldTTL
	}
	d := time.Duration(*minutes) * time.Minute
	if d < minHoldTTL {
		return minHoldTTL
	}
	if d > maxHoldTTL {
		return maxHoldTTL
	}
	return d
}
