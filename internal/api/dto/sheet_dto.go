package dto

import (
	"time"

	"github.com/spec-kit/quality-service/internal/domain"
)

// UpsertQualitySheetRequest payload.
type UpsertQualitySheetRequest struct {
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	ResponsibleID *string    `json:"responsible_id"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// QualitySheetSummary response.
type QualitySheetSummary struct {
	ID            string     `json:"id"`
	Reference     string     `json:"reference"`
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	ResponsibleID *string    `json:"responsible_id"`
	Description   string     `json:"description"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewQualitySheetSummary maps a domain sheet.
func NewQualitySheetSummary(sheet *domain.QualitySheet) QualitySheetSummary {
	return QualitySheetSummary{
		ID:            sheet.ID,
		Reference:     sheet.Reference,
		Title:         sheet.Title,
		Type:          sheet.Type,
		Status:        sheet.Status,
		ResponsibleID: sheet.ResponsibleID,
		Description:   sheet.Description,
		StartDate:     sheet.StartDate,
		EndDate:       sheet.EndDate,
		CreatedAt:     sheet.CreatedAt,
		UpdatedAt:     sheet.UpdatedAt,
	}
}

// UpsertTrackingSheetRequest payload.
type UpsertTrackingSheetRequest struct {
	SheetID       string    `json:"sheet_id"`
	ProgressState string    `json:"progress_state"`
	Conformity    *float64  `json:"conformity"`
	Delay         *float64  `json:"delay"`
	Indicator     string    `json:"indicator"`
	Comment       string    `json:"comment"`
	TrackingDate  time.Time `json:"tracking_date"`
}

// TrackingSheetSummary response.
type TrackingSheetSummary struct {
	ID            string    `json:"id"`
	SheetID       string    `json:"sheet_id"`
	ProgressState string    `json:"progress_state"`
	Conformity    *float64  `json:"conformity"`
	Delay         *float64  `json:"delay"`
	Indicator     string    `json:"indicator"`
	Comment       string    `json:"comment"`
	TrackingDate  time.Time `json:"tracking_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewTrackingSheetSummary maps a domain tracking record.
func NewTrackingSheetSummary(tracking *domain.TrackingSheet) TrackingSheetSummary {
	return TrackingSheetSummary{
		ID:            tracking.ID,
		SheetID:       tracking.SheetID,
		ProgressState: tracking.ProgressState,
		Conformity:    tracking.Conformity,
		Delay:         tracking.Delay,
		Indicator:     tracking.Indicator,
		Comment:       tracking.Comment,
		TrackingDate:  tracking.TrackingDate,
		CreatedAt:     tracking.CreatedAt,
		UpdatedAt:     tracking.UpdatedAt,
	}
}
