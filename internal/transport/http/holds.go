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

// HoldManager is the lifecycle surface needed by the hold endpoints.
type HoldManager interface {
	CreateHold(ctx context.Context, in app.CreateHoldInput) (domain.Hold, error)
	RenewHold(ctx context.Context, in app.RenewHoldInput) (domain.Hold, error)
	ReleaseHold(ctx context.Context, holdID string) error
}

// HandleCreateHold returns the handler for POST /holds.
func HandleCreateHold(svc HoldManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createHoldRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.TenantID == "" || req.ProductID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "tenant_id and product_id are required")
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		hold, err := svc.CreateHold(r.Context(), app.CreateHoldInput{
			TenantID:   req.TenantID,
			ProductID:  req.ProductID,
			Quantity:   quantity,
			StartsAt:   req.StartsAt,
			EndsAt:     req.EndsAt,
			TTLMinutes: req.TTLMinutes,
			CustomerID: req.CustomerID,
			SessionID:  req.SessionID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, holdResponse{
			ID:        hold.ID,
			ProductID: hold.ProductID,
			Quantity:  hold.Quantity,
			StartsAt:  hold.StartsAt,
			EndsAt:    hold.EndsAt,
			ExpiresAt: hold.ExpiresAt,
		})
	}
}

// HandleHold routes /holds/{id}: PATCH renews, DELETE releases.
func HandleHold(svc HoldManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holdID, ok := parseHoldPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPatch:
			renewHold(w, r, svc, holdID)
		case http.MethodDelete:
			if err := svc.ReleaseHold(r.Context(), holdID); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func renewHold(w http.ResponseWriter, r *http.Request, svc HoldManager, holdID string) {
	var req renewHoldRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	hold, err := svc.RenewHold(r.Context(), app.RenewHoldInput{
		HoldID:     holdID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Quantity:   req.Quantity,
		TTLMinutes: req.TTLMinutes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, holdResponse{
		ID:        hold.ID,
		ProductID: hold.ProductID,
		Quantity:  hold.Quantity,
		StartsAt:  hold.StartsAt,
		EndsAt:    hold.EndsAt,
		ExpiresAt: hold.ExpiresAt,
	})
}

func parseHoldPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "holds" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type createHoldRequest struct {
	TenantID   string    `json:"tenant_id"`
	ProductID  string    `json:"product_id"`
	Quantity   *int      `json:"quantity"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	TTLMinutes *int      `json:"ttl_minutes"`
	CustomerID *string   `json:"customer_id"`
	SessionID  *string   `json:"session_id"`
}

type renewHoldRequest struct {
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	Quantity   *int       `json:"quantity"`
	TTLMinutes *int       `json:"ttl_minutes"`
}

type holdResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
