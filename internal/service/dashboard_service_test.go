package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/quality-service/internal/config"
	"github.com/spec-kit/quality-service/internal/domain"
)

type fakeSheetRepo struct {
	sheets  []domain.QualitySheet
	listErr error
	delay   time.Duration
	mu      sync.Mutex
	calls   int
}

func (f *fakeSheetRepo) Create(ctx context.Context, s *domain.QualitySheet) error { return nil }
func (f *fakeSheetRepo) Update(ctx context.Context, s *domain.QualitySheet) error { return nil }
func (f *fakeSheetRepo) Delete(ctx context.Context, id string) error              { return nil }
func (f *fakeSheetRepo) GetByID(ctx context.Context, id string) (*domain.QualitySheet, error) {
	return nil, nil
}

func (f *fakeSheetRepo) List(ctx context.Context) ([]domain.QualitySheet, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sheets, nil
}

type fakeTrackingRepo struct {
	trackings []domain.TrackingSheet
	listErr   error
}

func (f *fakeTrackingRepo) Create(ctx context.Context, t *domain.TrackingSheet) error { return nil }
func (f *fakeTrackingRepo) Update(ctx context.Context, t *domain.TrackingSheet) error { return nil }
func (f *fakeTrackingRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeTrackingRepo) GetByID(ctx context.Context, id string) (*domain.TrackingSheet, error) {
	return nil, nil
}

func (f *fakeTrackingRepo) List(ctx context.Context) ([]domain.TrackingSheet, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.trackings, nil
}

func (f *fakeTrackingRepo) ListBySheet(ctx context.Context, sheetID string) ([]domain.TrackingSheet, error) {
	return f.trackings, nil
}

type fakeProjectRepo struct{ projects []domain.Project }

func (f *fakeProjectRepo) Create(ctx context.Context, p *domain.Project) error { return nil }
func (f *fakeProjectRepo) Update(ctx context.Context, p *domain.Project) error { return nil }
func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	return f.projects, nil
}

type fakeTaskRepo struct{ tasks []domain.Task }

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.Task) error             { return nil }
func (f *fakeTaskRepo) Update(ctx context.Context, t *domain.Task) error             { return nil }
func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error                  { return nil }
func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) { return nil, nil }
func (f *fakeTaskRepo) List(ctx context.Context) ([]domain.Task, error)              { return f.tasks, nil }
func (f *fakeTaskRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	return f.tasks, nil
}

func testAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		ConformityCutoff:       80,
		OverdueThresholdDays:   15,
		DelayPenalty:           2,
		WeightConformity:       0.4,
		WeightEfficiency:       0.3,
		WeightDataQuality:      0.3,
		EfficiencyConformity:   0.2,
		RefreshIntervalSeconds: 30,
	}
}

func newTestDashboard(sheets *fakeSheetRepo, trackings *fakeTrackingRepo) *DashboardService {
	return NewDashboardService(testAnalyticsConfig(), DashboardDependencies{
		SheetRepo:    sheets,
		TrackingRepo: trackings,
		ProjectRepo:  &fakeProjectRepo{},
		TaskRepo:     &fakeTaskRepo{},
	}, zap.NewNop())
}

func TestDashboardRefreshComputesReports(t *testing.T) {
	conf := func(v float64) *float64 { return &v }
	sheets := &fakeSheetRepo{sheets: []domain.QualitySheet{
		{ID: "s1", Reference: "FQ-1", Title: "Audit", Status: "en cours"},
		{ID: "s2", Reference: "FQ-2", Title: "Revue", Status: "BLOQUÉ"},
	}}
	trackings := &fakeTrackingRepo{trackings: []domain.TrackingSheet{
		{ID: "t1", SheetID: "s1", Conformity: conf(90), Delay: conf(10), TrackingDate: time.Now()},
		{ID: "t2", SheetID: "s1", Conformity: conf(60), Delay: conf(20), TrackingDate: time.Now()},
	}}

	svc := newTestDashboard(sheets, trackings)
	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.KPI.TotalSheets)
	assert.Equal(t, 2, snap.KPI.TotalTrackings)
	assert.InDelta(t, 50.0, snap.KPI.ConformityRate, 0.01)
	assert.Equal(t, 1, snap.KPI.StatusCounts["EN_COURS"])
	assert.Equal(t, 1, snap.KPI.StatusCounts["BLOQUE"])
	assert.Equal(t, 1, snap.KPI.BlockedSheets)
	assert.Len(t, snap.KPI.SheetsPerMonth, 6)

	// s1 is overdue: its max delay of 20 exceeds the 15-day threshold.
	require.Len(t, snap.KPI.Overdue, 1)
	assert.Equal(t, "s1", snap.KPI.Overdue[0].SheetID)
	assert.InDelta(t, 20.0, snap.KPI.Overdue[0].Delay, 0.01)

	// efficiency = 100 - 2*15 + 0.2*50 = 80, data quality = 100
	assert.InDelta(t, 80.0, snap.AI.Efficiency, 0.01)
	assert.InDelta(t, 100.0, snap.AI.DataQuality, 0.01)
	assert.InDelta(t, 0.4*50+0.3*80+0.3*100, snap.AI.Score, 0.01)
}

func TestDashboardRefreshFailsFast(t *testing.T) {
	boom := errors.New("trackings unavailable")
	sheets := &fakeSheetRepo{delay: 200 * time.Millisecond}
	trackings := &fakeTrackingRepo{listErr: boom}

	svc := newTestDashboard(sheets, trackings)

	start := time.Now()
	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	// The failing load cancels the group; the slow one must not run out its
	// full delay.
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestDashboardLastRefreshWins(t *testing.T) {
	sheets := &fakeSheetRepo{}
	trackings := &fakeTrackingRepo{}
	svc := newTestDashboard(sheets, trackings)

	svc.generation.Store(2)
	older := svc.compute(1, []domain.QualitySheet{{ID: "old"}}, nil, nil, nil, time.Now())
	newer := svc.compute(2, nil, nil, nil, nil, time.Now())

	// The newer generation lands first; the stale result must be discarded.
	svc.store(context.Background(), newer)
	svc.store(context.Background(), older)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), snap.Generation)
	assert.Equal(t, 0, snap.KPI.TotalSheets)
}

func TestDashboardSnapshotRefreshesWhenEmpty(t *testing.T) {
	sheets := &fakeSheetRepo{}
	svc := newTestDashboard(sheets, &fakeTrackingRepo{})

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sheets.calls)

	// A second read serves the cached snapshot.
	_, err = svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sheets.calls)
}
