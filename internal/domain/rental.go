package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental is a confirmed booking. Unlike a hold it is durable and not
// time-boxed; only non-cancelled rentals consume capacity.
type Rental struct {
	ID        string
	TenantID  string
	Status    RentalStatus
	CreatedAt time.Time
}

// RentalItem carries the quantity and date range of one rented product line.
type RentalItem struct {
	ID        string
	RentalID  string
	ProductID string
	Quantity  int
	StartsAt  time.Time
	EndsAt    time.Time
}
