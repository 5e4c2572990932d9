package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
	"github.com/DamianTarnowski/SportRental-sub002/internal/testutil"
)

func TestHoldRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewHoldRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("GetProductForUpdate returns product and ErrProductNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 4)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			product, err := repo.GetProductForUpdate(txCtx, tenantID, productID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if product.ID != productID || product.TenantID != tenantID || product.TotalQuantity != 4 {
				t.Fatalf("unexpected product: %+v", product)
			}

			_, err = repo.GetProductForUpdate(txCtx, tenantID, uuid.NewString())
			if err != domain.ErrProductNotFound {
				t.Fatalf("expected ErrProductNotFound, got %v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		if _, err := repo.GetProductForUpdate(ctx, tenantID, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("SumOverlappingHolds honors overlap, expiry and exclusion", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC()

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 10)
		otherProduct := testutil.InsertProduct(t, ctx, pool, tenantID, "Paddle", 10)

		overlapping := testutil.InsertHold(t, ctx, pool, domain.Hold{
			TenantID: tenantID, ProductID: productID, Quantity: 3,
			StartsAt: day(10), EndsAt: day(13), ExpiresAt: now.Add(10 * time.Minute),
		})
		// Expired holds never count, swept or not.
		testutil.InsertHold(t, ctx, pool, domain.Hold{
			TenantID: tenantID, ProductID: productID, Quantity: 4,
			StartsAt: day(10), EndsAt: day(13), ExpiresAt: now.Add(-time.Minute),
		})
		// Touching range: [13,15) does not overlap a query ending at 13.
		testutil.InsertHold(t, ctx, pool, domain.Hold{
			TenantID: tenantID, ProductID: productID, Quantity: 5,
			StartsAt: day(13), EndsAt: day(15), ExpiresAt: now.Add(10 * time.Minute),
		})
		testutil.InsertHold(t, ctx, pool, domain.Hold{
			TenantID: tenantID, ProductID: otherProduct, Quantity: 6,
			StartsAt: day(10), EndsAt: day(13), ExpiresAt: now.Add(10 * time.Minute),
		})

		total, err := repo.SumOverlappingHolds(ctx, tenantID, productID, day(12), day(13), now, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 3 {
			t.Fatalf("expected 3, got %d", total)
		}

		total, err = repo.SumOverlappingHolds(ctx, tenantID, productID, day(12), day(13), now, overlapping)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 0 {
			t.Fatalf("expected 0 with exclusion, got %d", total)
		}
	})

	t.Run("SumOverlappingRentals ignores cancelled and touching", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 10)

		testutil.InsertRental(t, ctx, pool, tenantID, productID, domain.RentalStatusActive, 2, day(10), day(13))
		testutil.InsertRental(t, ctx, pool, tenantID, productID, domain.RentalStatusCancelled, 3, day(10), day(13))
		testutil.InsertRental(t, ctx, pool, tenantID, productID, domain.RentalStatusActive, 4, day(13), day(15))

		total, err := repo.SumOverlappingRentals(ctx, tenantID, productID, day(12), day(13))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 2 {
			t.Fatalf("expected 2, got %d", total)
		}
	})

	t.Run("CreateHold then GetHoldForUpdate roundtrip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 4)
		sessionID := "sess-1"

		hold := domain.Hold{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			ProductID: productID,
			Quantity:  2,
			StartsAt:  day(10),
			EndsAt:    day(12),
			ExpiresAt: now.Add(10 * time.Minute),
			SessionID: &sessionID,
			CreatedAt: now,
		}
		if err := repo.CreateHold(ctx, hold); err != nil {
			t.Fatalf("create hold: %v", err)
		}

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			got, err := repo.GetHoldForUpdate(txCtx, hold.ID)
			if err != nil {
				t.Fatalf("get hold: %v", err)
			}
			if got.Quantity != 2 || !got.StartsAt.Equal(day(10)) || !got.EndsAt.Equal(day(12)) {
				t.Fatalf("unexpected hold: %+v", got)
			}
			if got.SessionID == nil || *got.SessionID != sessionID {
				t.Fatalf("expected session id %q, got %v", sessionID, got.SessionID)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		orphan := hold
		orphan.ID = uuid.NewString()
		orphan.ProductID = uuid.NewString()
		if err := repo.CreateHold(ctx, orphan); err != domain.ErrProductNotFound {
			t.Fatalf("expected ErrProductNotFound for unknown product, got %v", err)
		}
	})

	t.Run("DeleteHold reports whether a row was removed", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC()

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 4)
		holdID := testutil.InsertHold(t, ctx, pool, domain.Hold{
			TenantID: tenantID, ProductID: productID, Quantity: 1,
			StartsAt: day(10), EndsAt: day(12), ExpiresAt: now.Add(10 * time.Minute),
		})

		deleted, err := repo.DeleteHold(ctx, holdID)
		if err != nil {
			t.Fatalf("delete hold: %v", err)
		}
		if !deleted {
			t.Fatalf("expected delete to report true")
		}

		deleted, err = repo.DeleteHold(ctx, holdID)
		if err != nil {
			t.Fatalf("second delete: %v", err)
		}
		if deleted {
			t.Fatalf("expected second delete to report false")
		}
	})

	t.Run("DeleteExpired removes exactly the expired set", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC()

		tenantID := uuid.NewString()
		productID := testutil.InsertProduct(t, ctx, pool, tenantID, "Kayak", 20)

		for i := 0; i < 5; i++ {
			testutil.InsertHold(t, ctx, pool, domain.Hold{
				TenantID: tenantID, ProductID: productID, Quantity: 1,
				StartsAt: day(10), EndsAt: day(12), ExpiresAt: now.Add(-time.Minute),
			})
		}
		for i := 0; i < 2; i++ {
			testutil.InsertHold(t, ctx, pool, domain.Hold{
				TenantID: tenantID, ProductID: productID, Quantity: 1,
				StartsAt: day(10), EndsAt: day(12), ExpiresAt: now.Add(10 * time.Minute),
			})
		}

		removed, err := repo.DeleteExpired(ctx, now)
		if err != nil {
			t.Fatalf("delete expired: %v", err)
		}
		if removed != 5 {
			t.Fatalf("expected 5 removed, got %d", removed)
		}

		var remaining int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM holds`).Scan(&remaining); err != nil {
			t.Fatalf("count holds: %v", err)
		}
		if remaining != 2 {
			t.Fatalf("expected 2 holds to survive, got %d", remaining)
		}

		removed, err = repo.DeleteExpired(ctx, now)
		if err != nil {
			t.Fatalf("second sweep: %v", err)
		}
		if removed != 0 {
			t.Fatalf("expected no-op sweep, got %d removed", removed)
		}
	})
}
