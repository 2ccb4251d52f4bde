package domain

import "time"

// SheetStatus is the canonical lifecycle vocabulary for sheets. Legacy data
// carries free-text variants; analytics.NormalizeStatus maps them here.
type SheetStatus string

const (
	SheetStatusEnCours SheetStatus = "EN_COURS"
	SheetStatusTermine SheetStatus = "TERMINE"
	SheetStatusBloque  SheetStatus = "BLOQUE"
)

// QualitySheet represents one unit of quality work (audit, control,
// improvement action) with a lifecycle status.
type QualitySheet struct {
	ID            string
	Reference     string
	Title         string
	Type          string
	Status        string
	ResponsibleID *string
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
