package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	"github.com/spec-kit/quality-service/internal/repository"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// TrackingSheetService coordinates tracking-sheet workflows.
type TrackingSheetService struct {
	trackings  repository.TrackingSheetRepository
	sheets     repository.QualitySheetRepository
	dispatcher events.Dispatcher
}

// NewTrackingSheetService constructs the service.
func NewTrackingSheetService(trackings repository.TrackingSheetRepository, sheets repository.QualitySheetRepository, dispatcher events.Dispatcher) *TrackingSheetService {
	return &TrackingSheetService{trackings: trackings, sheets: sheets, dispatcher: dispatcher}
}

// TrackingSheetInput describes create/update payloads.
type TrackingSheetInput struct {
	SheetID       string
	ProgressState string
	Conformity    *float64
	Delay         *float64
	Indicator     string
	Comment       string
	TrackingDate  time.Time
}

// Create inserts a tracking record. Two records for the same sheet on the
// same calendar day are rejected; whether that should ever be legal is a
// product decision carried over from the legacy system.
func (s *TrackingSheetService) Create(ctx context.Context, actorID string, input TrackingSheetInput) (*domain.TrackingSheet, error) {
	if _, err := s.sheets.GetByID(ctx, strings.TrimSpace(input.SheetID)); err != nil {
		return nil, err
	}

	existing, err := s.trackings.ListBySheet(ctx, strings.TrimSpace(input.SheetID))
	if err != nil {
		return nil, err
	}
	if HasDuplicateTracking(existing, input.SheetID, input.TrackingDate) {
		return nil, apperrors.NewConflict("a tracking record already exists for this sheet on this day", map[string]any{
			"sheet_id": strings.TrimSpace(input.SheetID),
			"date":     input.TrackingDate.Format("2006-01-02"),
		})
	}

	tracking := &domain.TrackingSheet{
		SheetID:       strings.TrimSpace(input.SheetID),
		ProgressState: strings.TrimSpace(input.ProgressState),
		Conformity:    input.Conformity,
		Delay:         input.Delay,
		Indicator:     strings.TrimSpace(input.Indicator),
		Comment:       strings.TrimSpace(input.Comment),
		TrackingDate:  input.TrackingDate,
	}
	if err := s.trackings.Create(ctx, tracking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventTrackingAdded,
		ActorID: actorID,
		Payload: events.TrackingAddedPayload{
			TrackingID: tracking.ID,
			SheetID:    tracking.SheetID,
		},
	})
	return tracking, nil
}

// Update applies the input and returns the stored record re-read from the
// repository.
func (s *TrackingSheetService) Update(ctx context.Context, id string, input TrackingSheetInput) (*domain.TrackingSheet, error) {
	tracking, err := s.trackings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tracking.ProgressState = strings.TrimSpace(input.ProgressState)
	tracking.Conformity = input.Conformity
	tracking.Delay = input.Delay
	tracking.Indicator = strings.TrimSpace(input.Indicator)
	tracking.Comment = strings.TrimSpace(input.Comment)
	if !input.TrackingDate.IsZero() {
		tracking.TrackingDate = input.TrackingDate
	}

	if err := s.trackings.Update(ctx, tracking); err != nil {
		return nil, err
	}
	return s.trackings.GetByID(ctx, id)
}

// Delete removes a tracking record.
func (s *TrackingSheetService) Delete(ctx context.Context, id string) error {
	return s.trackings.Delete(ctx, id)
}

// Get fetches one record.
func (s *TrackingSheetService) Get(ctx context.Context, id string) (*domain.TrackingSheet, error) {
	return s.trackings.GetByID(ctx, id)
}

// List returns all tracking records, or those of one sheet when sheetID is
// non-empty.
func (s *TrackingSheetService) List(ctx context.Context, sheetID string) ([]domain.TrackingSheet, error) {
	if strings.TrimSpace(sheetID) != "" {
		return s.trackings.ListBySheet(ctx, strings.TrimSpace(sheetID))
	}
	return s.trackings.List(ctx)
}

// HasDuplicateTracking reports whether the snapshot already holds a record
// for the sheet on the same calendar day.
func HasDuplicateTracking(existing []domain.TrackingSheet, sheetID string, date time.Time) bool {
	sheetID = strings.TrimSpace(sheetID)
	y, m, d := date.Date()
	for _, t := range existing {
		if strings.TrimSpace(t.SheetID) != sheetID {
			continue
		}
		ty, tm, td := t.TrackingDate.Date()
		if ty == y && tm == m && td == d {
			return true
		}
	}
	return false
}

func (s *TrackingSheetService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
