package domain

import "time"

// Route is an entry in the route catalog. Routes are upserted by id via
// set-route-details and never deleted; retiring a route clears Active.
// A route must exist and be active before adjustments can reference it.
type Route struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // free-form, e.g. "bus", "tram", "rail"
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}
