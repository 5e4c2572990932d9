package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/DamianTarnowski/SportRental-sub002/internal/clock"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

type InventoryRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) error
	ListProductsByTenant(ctx context.Context, tenantID string) ([]domain.Product, error)
	UpdateTotalQuantity(ctx context.Context, tenantID, productID string, totalQuantity int) error
}

// InventoryService owns the product ledger: the per-tenant total_quantity
// ceiling that availability is computed against.
type InventoryService struct {
	repo  InventoryRepository
	clock clock.Clock
}

func NewInventoryService(repo InventoryRepository, clk clock.Clock) *InventoryService {
	return &InventoryService{
		repo:  repo,
		clock: clk,
	}
}

type CreateProductInput struct {
	TenantID      string
	Name          string
	TotalQuantity int
}

func (s *InventoryService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.TenantID == "" {
		return domain.Product{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.TotalQuantity < 0 {
		return domain.Product{}, domain.ErrInvalidCapacity
	}

	product := domain.Product{
		ID:            uuid.NewString(),
		TenantID:      in.TenantID,
		Name:          in.Name,
		TotalQuantity: in.TotalQuantity,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (s *InventoryService) ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListProductsByTenant(ctx, tenantID)
}

func (s *InventoryService) SetTotalQuantity(ctx context.Context, tenantID, productID string, totalQuantity int) error {
	if totalQuantity < 0 {
		return domain.ErrInvalidCapacity
	}
	return s.repo.UpdateTotalQuantity(ctx, tenantID, productID, totalQuantity)
}
