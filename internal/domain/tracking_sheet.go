package domain

import "time"

// TrackingSheet is a periodic follow-up record linked to exactly one quality
// sheet. Conformity and Delay are optional structured fields; legacy records
// often carry the value only inside the free-text Indicator.
type TrackingSheet struct {
	ID            string
	SheetID       string
	ProgressState string
	Conformity    *float64
	Delay         *float64
	Indicator     string
	Comment       string
	TrackingDate  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
