package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/quality-service/internal/client"
	"github.com/spec-kit/quality-service/internal/repository"
)

// ImportService pulls quality records out of the legacy backend and loads
// them into local storage. Local ids are regenerated on insert, so legacy
// sheet references are remapped and duplicates are detected by natural key
// rather than by id.
type ImportService struct {
	legacy    *client.Client
	sheets    repository.QualitySheetRepository
	trackings repository.TrackingSheetRepository
	logger    *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(legacy *client.Client, sheets repository.QualitySheetRepository, trackings repository.TrackingSheetRepository, logger *zap.Logger) *ImportService {
	return &ImportService{legacy: legacy, sheets: sheets, trackings: trackings, logger: logger}
}

// ImportReport summarizes one import run.
type ImportReport struct {
	SheetsImported    int `json:"sheets_imported"`
	SheetsSkipped     int `json:"sheets_skipped"`
	TrackingsImported int `json:"trackings_imported"`
	TrackingsSkipped  int `json:"trackings_skipped"`
}

// Run fetches both collections with the caller's token and inserts the
// records not yet known locally. A tracking record whose sheet cannot be
// resolved locally is skipped rather than failing the whole run.
func (s *ImportService) Run(ctx context.Context, token string) (*ImportReport, error) {
	s.legacy.SetToken(token)

	report := &ImportReport{}

	legacySheets, err := s.legacy.FetchQualitySheets(ctx)
	if err != nil {
		return nil, err
	}
	existingSheets, err := s.sheets.List(ctx)
	if err != nil {
		return nil, err
	}

	// legacy sheet id -> local sheet id, for rewriting tracking references
	sheetIDs := make(map[string]string, len(legacySheets))
	for i := range legacySheets {
		sheet := legacySheets[i]
		legacyID := strings.TrimSpace(sheet.ID)

		if HasDuplicateSheet(existingSheets, sheet.Title, sheet.Type) {
			report.SheetsSkipped++
			for j := range existingSheets {
				if strings.EqualFold(strings.TrimSpace(existingSheets[j].Title), strings.TrimSpace(sheet.Title)) {
					sheetIDs[legacyID] = existingSheets[j].ID
					break
				}
			}
			continue
		}

		sheet.ID = ""
		if err := s.sheets.Create(ctx, &sheet); err != nil {
			return nil, err
		}
		existingSheets = append(existingSheets, sheet)
		sheetIDs[legacyID] = sheet.ID
		report.SheetsImported++
	}

	legacyTrackings, err := s.legacy.FetchTrackingSheets(ctx)
	if err != nil {
		return nil, err
	}
	existingTrackings, err := s.trackings.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range legacyTrackings {
		tracking := legacyTrackings[i]
		localSheetID, ok := sheetIDs[strings.TrimSpace(tracking.SheetID)]
		if !ok {
			report.TrackingsSkipped++
			continue
		}
		if HasDuplicateTracking(existingTrackings, localSheetID, tracking.TrackingDate) {
			report.TrackingsSkipped++
			continue
		}

		tracking.ID = ""
		tracking.SheetID = localSheetID
		if err := s.trackings.Create(ctx, &tracking); err != nil {
			return nil, err
		}
		existingTrackings = append(existingTrackings, tracking)
		report.TrackingsImported++
	}

	s.logger.Info("legacy import finished",
		zap.Int("sheets_imported", report.SheetsImported),
		zap.Int("sheets_skipped", report.SheetsSkipped),
		zap.Int("trackings_imported", report.TrackingsImported),
		zap.Int("trackings_skipped", report.TrackingsSkipped))
	return report, nil
}
