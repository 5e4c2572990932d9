package domain

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical ranges", 10, 12, 10, 12, true},
		{"contained range", 10, 14, 11, 12, true},
		{"partial overlap", 10, 13, 12, 14, true},
		{"touching ranges are independent", 10, 12, 12, 14, false},
		{"disjoint ranges", 10, 11, 12, 14, false},
		{"reversed partial overlap", 12, 14, 10, 13, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			if got != tt.want {
				t.Fatalf("Overlaps(%d-%d, %d-%d) = %v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestHoldExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	h := Hold{ExpiresAt: now.Add(time.Minute)}
	if h.Expired(now) {
		t.Fatalf("hold expiring in the future reported expired")
	}

	h.ExpiresAt = now
	if !h.Expired(now) {
		t.Fatalf("hold expiring exactly now should be expired")
	}

	h.ExpiresAt = now.Add(-time.Minute)
	if !h.Expired(now) {
		t.Fatalf("hold expired a minute ago should be expired")
	}
}
