package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/DamianTarnowski/SportRental-sub002/internal/app"
)

// HoldConverter is the checkout-side surface: commit the rental and remove
// the hold in one unit of work.
type HoldConverter interface {
	ConvertHold(ctx context.Context, holdID string) (app.ConvertHoldResult, error)
}

// HandleConvertHold returns the handler for POST /holds/{id}/convert.
func HandleConvertHold(svc HoldConverter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		holdID, ok := parseConvertPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		res, err := svc.ConvertHold(r.Context(), holdID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, convertHoldResponse{
			RentalID:  res.Rental.ID,
			HoldID:    holdID,
			Status:    string(res.Rental.Status),
			CreatedAt: res.Rental.CreatedAt,
		})
	}
}

// HandleHoldSubtree dispatches everything under /holds/: conversion first,
// then the renew/release endpoints.
func HandleHoldSubtree(holds HoldManager, converter HoldConverter) http.HandlerFunc {
	convert := HandleConvertHold(converter)
	byID := HandleHold(holds)
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := parseConvertPath(r.URL.Path); ok {
			convert(w, r)
			return
		}
		byID(w, r)
	}
}

func parseConvertPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return "", false
	}
	if parts[0] != "holds" || parts[2] != "convert" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type convertHoldResponse struct {
	RentalID  string    `json:"rental_id"`
	HoldID    string    `json:"hold_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
