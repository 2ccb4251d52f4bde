package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/quality-service/internal/analytics"
	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	"github.com/spec-kit/quality-service/internal/repository"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// QualitySheetService coordinates quality-sheet workflows.
type QualitySheetService struct {
	sheets     repository.QualitySheetRepository
	trackings  repository.TrackingSheetRepository
	dispatcher events.Dispatcher
}

// NewQualitySheetService constructs the service.
func NewQualitySheetService(sheets repository.QualitySheetRepository, trackings repository.TrackingSheetRepository, dispatcher events.Dispatcher) *QualitySheetService {
	return &QualitySheetService{sheets: sheets, trackings: trackings, dispatcher: dispatcher}
}

// QualitySheetInput describes create/update payloads.
type QualitySheetInput struct {
	Title         string
	Type          string
	Status        string
	ResponsibleID *string
	Description   string
	StartDate     *time.Time
	EndDate       *time.Time
}

// Create inserts a sheet after checking for a same-title same-type duplicate
// over the current snapshot. The check is a UX convenience; it is pure over
// already-loaded data and never replaces a server-side constraint.
func (s *QualitySheetService) Create(ctx context.Context, actorID string, input QualitySheetInput) (*domain.QualitySheet, error) {
	existing, err := s.sheets.List(ctx)
	if err != nil {
		return nil, err
	}
	if HasDuplicateSheet(existing, input.Title, input.Type) {
		return nil, apperrors.NewConflict("a sheet with this title and type already exists", map[string]any{
			"title": strings.TrimSpace(input.Title),
			"type":  strings.TrimSpace(input.Type),
		})
	}

	sheet := &domain.QualitySheet{
		Reference:     generateSheetReference(),
		Title:         strings.TrimSpace(input.Title),
		Type:          strings.TrimSpace(input.Type),
		Status:        analytics.NormalizeStatus(input.Status),
		ResponsibleID: input.ResponsibleID,
		Description:   strings.TrimSpace(input.Description),
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	}
	if sheet.Status == "" {
		sheet.Status = string(domain.SheetStatusEnCours)
	}
	if err := s.sheets.Create(ctx, sheet); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventSheetCreated,
		ActorID: actorID,
		Payload: events.SheetCreatedPayload{
			SheetID:       sheet.ID,
			Reference:     sheet.Reference,
			Title:         sheet.Title,
			Type:          sheet.Type,
			ResponsibleID: sheet.ResponsibleID,
		},
	})
	return sheet, nil
}

// Update applies the input and returns the stored sheet re-read from the
// repository, so the response reflects the server's view.
func (s *QualitySheetService) Update(ctx context.Context, actorID, id string, input QualitySheetInput) (*domain.QualitySheet, error) {
	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := sheet.Status
	sheet.Title = strings.TrimSpace(input.Title)
	sheet.Type = strings.TrimSpace(input.Type)
	sheet.Status = analytics.NormalizeStatus(input.Status)
	sheet.ResponsibleID = input.ResponsibleID
	sheet.Description = strings.TrimSpace(input.Description)
	sheet.StartDate = input.StartDate
	sheet.EndDate = input.EndDate

	if err := s.sheets.Update(ctx, sheet); err != nil {
		return nil, err
	}
	if sheet.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:    events.EventSheetStatusChanged,
			ActorID: actorID,
			Payload: events.SheetStatusChangedPayload{
				SheetID:       sheet.ID,
				OldStatus:     oldStatus,
				NewStatus:     sheet.Status,
				ResponsibleID: sheet.ResponsibleID,
			},
		})
	}
	return s.sheets.GetByID(ctx, id)
}

// Delete removes a sheet and its tracking records.
func (s *QualitySheetService) Delete(ctx context.Context, id string) error {
	trackings, err := s.trackings.ListBySheet(ctx, id)
	if err != nil {
		return err
	}
	for _, t := range trackings {
		if err := s.trackings.Delete(ctx, t.ID); err != nil {
			return err
		}
	}
	return s.sheets.Delete(ctx, id)
}

// Get fetches one sheet.
func (s *QualitySheetService) Get(ctx context.Context, id string) (*domain.QualitySheet, error) {
	return s.sheets.GetByID(ctx, id)
}

// List returns all sheets.
func (s *QualitySheetService) List(ctx context.Context) ([]domain.QualitySheet, error) {
	return s.sheets.List(ctx)
}

// HasDuplicateSheet reports whether the snapshot already holds a sheet with
// the same trimmed title and type.
func HasDuplicateSheet(existing []domain.QualitySheet, title, sheetType string) bool {
	title = strings.TrimSpace(title)
	sheetType = strings.TrimSpace(sheetType)
	for _, sheet := range existing {
		if strings.EqualFold(strings.TrimSpace(sheet.Title), title) &&
			strings.EqualFold(strings.TrimSpace(sheet.Type), sheetType) {
			return true
		}
	}
	return false
}

func (s *QualitySheetService) publish(ctx context.Context, event events.Event) {
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

func generateSheetReference() string {
	return "FQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
