package catalog

import "time"

// Destination is one driver-published entry in the catalog. Fare is
// denominated in base currency units. Available is set true at creation
// and checked at booking; no operation currently clears it.
type Destination struct {
	ID        int64     `json:"id"`
	DriverID  string    `json:"driver_id"`
	Location  string    `json:"location"`
	Fare      int64     `json:"fare"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}
