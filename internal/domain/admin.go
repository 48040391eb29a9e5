package domain

import "time"

// AdminControl holds the single current admin principal. It gates planner
// authorization, version approval/activation, and its own transfer.
// There is exactly one row; TransferAdmin replaces it atomically.
type AdminControl struct {
	Admin     Principal `json:"admin"`
	UpdatedAt time.Time `json:"updated_at"`
}
