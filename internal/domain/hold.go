package domain

import "time"

// Hold is a shopper's provisional, TTL-bound claim on product quantity for a
// date range. The range is half-open: [StartsAt, EndsAt).
type Hold struct {
	ID         string
	TenantID   string
	ProductID  string
	Quantity   int
	StartsAt   time.Time
	EndsAt     time.Time
	ExpiresAt  time.Time
	CustomerID *string
	SessionID  *string
	CreatedAt  time.Time
}

// Expired reports whether the hold is past its TTL deadline. An expired hold
// no longer consumes capacity even before the sweeper deletes the row.
func (h Hold) Expired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. A range ending exactly when another starts does
// not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
