package domain

import "time"

// Product is one rentable inventory line. TotalQuantity is the physical pool
// every hold and rental draws from; zero means listed but not yet stocked.
type Product struct {
	ID            string
	TenantID      string
	Name          string
	TotalQuantity int
	CreatedAt     time.Time
}
