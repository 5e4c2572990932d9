package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/DamianTarnowski/SportRental-sub002/internal/app"
	"github.com/DamianTarnowski/SportRental-sub002/internal/domain"
)

// InventoryAdmin is the product-ledger surface used by the admin endpoints.
type InventoryAdmin interface {
	CreateProduct(ctx context.Context, in app.CreateProductInput) (domain.Product, error)
	ListProducts(ctx context.Context, tenantID string) ([]domain.Product, error)
	SetTotalQuantity(ctx context.Context, tenantID, productID string, totalQuantity int) error
}

// HandleAdminProducts serves POST and GET on /admin/products.
func HandleAdminProducts(svc InventoryAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createProduct(w, r, svc)
		case http.MethodGet:
			listProducts(w, r, svc)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminProduct serves PATCH /admin/products/{id} (total-quantity update).
func HandleAdminProduct(svc InventoryAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		productID, ok := parseAdminProductPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req updateProductRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.TenantID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "tenant_id is required")
			return
		}

		if err := svc.SetTotalQuantity(r.Context(), req.TenantID, productID, req.TotalQuantity); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createProduct(w http.ResponseWriter, r *http.Request, svc InventoryAdmin) {
	var req createProductRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	product, err := svc.CreateProduct(r.Context(), app.CreateProductInput{
		TenantID:      req.TenantID,
		Name:          req.Name,
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func listProducts(w http.ResponseWriter, r *http.Request, svc InventoryAdmin) {
	tenantID := r.URL.Query().Get("tenant_id")
	if tenantID == "" {
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, "tenant_id is required")
		return
	}

	products, err := svc.ListProducts(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseAdminProductPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "admin" || parts[1] != "products" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

type createProductRequest struct {
	TenantID      string `json:"tenant_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type updateProductRequest struct {
	TenantID      string `json:"tenant_id"`
	TotalQuantity int    `json:"total_quantity"`
}

type productResponse struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Name:          p.Name,
		TotalQuantity: p.TotalQuantity,
		CreatedAt:     p.CreatedAt,
	}
}
