package app

import (
	"context"
	"testing"
	"time"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

func TestRentalService_ConvertHold(t *testing.T) {
	t.Parallel()

	product := domain.Product{ID: "prod-1", TenantID: "ten-1", TotalQuantity: 2}
	hold := domain.Hold{
		ID:        "h1",
		TenantID:  "ten-1",
		ProductID: "prod-1",
		Quantity:  2,
		StartsAt:  day(10),
		EndsAt:    day(12),
		ExpiresAt: testNow.Add(5 * time.Minute),
	}

	t.Run("converts hold into rental and removes hold", func(t *testing.T) {
		store := newFakeStore([]domain.Product{product}, []domain.Hold{hold}, nil)
		svc := NewRentalService(store, clock.NewFixed(testNow))

		res, err := svc.ConvertHold(context.Background(), "h1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Rental.Status != domain.RentalStatusActive {
			t.Fatalf("expected active rental, got %s", res.Rental.Status)
		}
		if res.Item.ProductID != hold.ProductID || res.Item.Quantity != hold.Quantity {
			t.Fatalf("rental item does not match hold: %+v", res.Item)
		}
		if !res.Item.StartsAt.Equal(hold.StartsAt) || !res.Item.EndsAt.Equal(hold.EndsAt) {
			t.Fatalf("rental item range does not match hold: %+v", res.Item)
		}
		if _, ok := store.holds["h1"]; ok {
			t.Fatalf("expected hold removed after conversion")
		}
		if _, ok := store.rentals[res.Rental.ID]; !ok {
			t.Fatalf("expected rental persisted")
		}
	})

	t.Run("consumed capacity is unchanged by conversion", func(t *testing.T) {
		store := newFakeStore([]domain.Product{product}, []domain.Hold{hold}, nil)
		svc := NewRentalService(store, clock.NewFixed(testNow))

		if _, err := svc.ConvertHold(context.Background(), "h1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		available, err := availableQuantity(context.Background(), store, product, day(10), day(12), testNow, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if available != 0 {
			t.Fatalf("expected 0 available after conversion, got %d", available)
		}
	})

	t.Run("missing hold", func(t *testing.T) {
		store := newFakeStore([]domain.Product{product}, nil, nil)
		svc := NewRentalService(store, clock.NewFixed(testNow))

		if _, err := svc.ConvertHold(context.Background(), "nope"); err != domain.ErrHoldNotFound {
			t.Fatalf("expected ErrHoldNotFound, got %v", err)
		}
	})

	t.Run("expired hold cannot be converted", func(t *testing.T) {
		expired := hold
		expired.ExpiresAt = testNow.Add(-time.Second)
		store := newFakeStore([]domain.Product{product}, []domain.Hold{expired}, nil)
		svc := NewRentalService(store, clock.NewFixed(testNow))

		if _, err := svc.ConvertHold(context.Background(), "h1"); err != domain.ErrHoldExpired {
			t.Fatalf("expected ErrHoldExpired, got %v", err)
		}
		if len(store.rentals) != 0 {
			t.Fatalf("expected no rental created, got %d", len(store.rentals))
		}
	})
}
