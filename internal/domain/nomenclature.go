package domain

import "time"

// Nomenclature is a typed, ordered reference value used to populate form
// dropdowns (allowed statuses, sheet types, and so on).
type Nomenclature struct {
	ID        string
	Type      string
	Code      string
	Label     string
	Position  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
