package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

type RentalRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetHoldForUpdate(ctx context.Context, holdID string) (domain.Hold, error)
	CreateRental(ctx context.Context, rental domain.Rental) error
	AddRentalItem(ctx context.Context, item domain.RentalItem) error
	DeleteHold(ctx context.Context, holdID string) (bool, error)
}

type RentalService struct {
	repo  RentalRepository
	clock clock.Clock
}

func NewRentalService(repo RentalRepository, clk clock.Clock) *RentalService {
	return &RentalService{
		repo:  repo,
		clock: clk,
	}
}

type ConvertHoldResult struct {
	Rental domain.Rental
	Item   domain.RentalItem
}

// ConvertHold turns a live hold into a confirmed rental. The rental insert
// and the hold delete share one transaction, so capacity never appears
// double-booked or falsely free in between.
func (s *RentalService) ConvertHold(ctx context.Context, holdID string) (ConvertHoldResult, error) {
	now := s.clock.Now()
	var result ConvertHoldResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		hold, err := s.repo.GetHoldForUpdate(txCtx, holdID)
		if err != nil {
			return err
		}
		if hold.Expired(now) {
			return domain.ErrHoldExpired
		}

		rental := domain.Rental{
			ID:        uuid.NewString(),
			TenantID:  hold.TenantID,
			Status:    domain.RentalStatusActive,
			CreatedAt: now,
		}
		item := domain.RentalItem{
			ID:        uuid.NewString(),
			RentalID:  rental.ID,
			ProductID: hold.ProductID,
			Quantity:  hold.Quantity,
			StartsAt:  hold.StartsAt,
			EndsAt:    hold.EndsAt,
		}

		if err := s.repo.CreateRental(txCtx, rental); err != nil {
			return err
		}
		if err := s.repo.AddRentalItem(txCtx, item); err != nil {
			return err
		}
		if _, err := s.repo.DeleteHold(txCtx, hold.ID); err != nil {
			return err
		}

		result = ConvertHoldResult{Rental: rental, Item: item}
		return nil
	})
	if err != nil {
		return ConvertHoldResult{}, err
	}
	return result, nil
}
