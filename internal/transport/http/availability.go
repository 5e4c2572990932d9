package http

import (
	"context"
	"net/http"
	"time"
)

// AvailabilityReader answers free-quantity queries for product listings and
// checkout validation.
type AvailabilityReader interface {
	AvailableQuantity(ctx context.Context, tenantID, productID string, startsAt, endsAt time.Time) (int, error)
}

// HandleAvailability returns the handler for GET /availability. The response
// clamps negative availability to zero; oversubscription is an internal
// detail, shoppers only see "none left".
func HandleAvailability(svc AvailabilityReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		q := r.URL.Query()
		tenantID := q.Get("tenant_id")
		productID := q.Get("product_id")
		if tenantID == "" || productID == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "tenant_id and product_id are required")
			return
		}

		startsAt, err := time.Parse(time.RFC3339, q.Get("starts_at"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "starts_at must be RFC3339")
			return
		}
		endsAt, err := time.Parse(time.RFC3339, q.Get("ends_at"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "ends_at must be RFC3339")
			return
		}

		available, err := svc.AvailableQuantity(r.Context(), tenantID, productID, startsAt, endsAt)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if available < 0 {
			available = 0
		}

		writeJSON(w, http.StatusOK, availabilityResponse{Available: available})
	}
}

type availabilityResponse struct {
	Available int `json:"available"`
}
