// Package domain contains the core data types for the transit schedule
// registry. This package has zero external dependencies and is imported by
// every other internal package (repo, service, handler).
//
// Conventions shared by all types:
//   - Calendar dates are integers in YYYYMMDD form (e.g. 20230601).
//   - Times of day are integer minutes since midnight, 0–1439.
//   - Principals are opaque string tokens supplied by the caller; the
//     registry never inspects their structure.
package domain

import "time"

// Principal is an opaque caller identity token used for authorization checks.
type Principal string

// Planner is a registered schedule planner. Planners self-register with
// Authorized false; only the admin flips the flag. Planner records are never
// deleted — revocation clears the flag but keeps the row.
type Planner struct {
	Principal         Principal `json:"principal"`
	Name              string    `json:"name"`
	Department        string    `json:"department"`
	Authorized        bool      `json:"authorized"`
	AuthorizationDate int       `json:"authorization_date"` // YYYYMMDD, 0 until first authorized
	CreatedAt         time.Time `json:"created_at"`
}
