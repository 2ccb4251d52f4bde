package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/quality-service/internal/analytics"
	"github.com/spec-kit/quality-service/internal/config"
	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/persistence"
	"github.com/spec-kit/quality-service/internal/repository"
)

const snapshotCacheKey = "dashboard:snapshot"

// KPIReport is the aggregate view behind the KPI screen.
type KPIReport struct {
	TotalSheets    int                     `json:"total_sheets"`
	TotalTrackings int                     `json:"total_trackings"`
	TotalProjects  int                     `json:"total_projects"`
	TotalTasks     int                     `json:"total_tasks"`
	ConformityRate float64                 `json:"conformity_rate"`
	StatusCounts   map[string]int          `json:"status_counts"`
	BlockedSheets  int                     `json:"blocked_sheets"`
	Overdue        []OverdueEntry          `json:"overdue"`
	SheetsPerMonth []analytics.MonthBucket `json:"sheets_per_month"`
}

// OverdueEntry is the display form of an overdue sheet.
type OverdueEntry struct {
	SheetID   string  `json:"sheet_id"`
	Reference string  `json:"reference"`
	Title     string  `json:"title"`
	Delay     float64 `json:"delay_days"`
}

// AIReport is the composite-score view behind the analytics screen.
type AIReport struct {
	ConformityRate float64 `json:"conformity_rate"`
	MeanDelay      float64 `json:"mean_delay"`
	Efficiency     float64 `json:"efficiency"`
	DataQuality    float64 `json:"data_quality"`
	Score          float64 `json:"score"`
}

// DashboardSnapshot bundles both reports with freshness metadata.
type DashboardSnapshot struct {
	Generation  int64     `json:"generation"`
	GeneratedAt time.Time `json:"generated_at"`
	KPI         KPIReport `json:"kpi"`
	AI          AIReport  `json:"ai"`
}

// DashboardService computes dashboard snapshots from the full collections.
type DashboardService struct {
	sheets    repository.QualitySheetRepository
	trackings repository.TrackingSheetRepository
	projects  repository.ProjectRepository
	tasks     repository.TaskRepository
	cache     *persistence.Redis
	cfg       config.AnalyticsConfig
	logger    *zap.Logger

	generation atomic.Int64
	mu         sync.RWMutex
	latest     *DashboardSnapshot
}

// DashboardDependencies bundles repositories for the dashboard service.
type DashboardDependencies struct {
	SheetRepo    repository.QualitySheetRepository
	TrackingRepo repository.TrackingSheetRepository
	ProjectRepo  repository.ProjectRepository
	TaskRepo     repository.TaskRepository
	Cache        *persistence.Redis
}

// NewDashboardService constructs the service.
func NewDashboardService(cfg config.AnalyticsConfig, deps DashboardDependencies, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		sheets:    deps.SheetRepo,
		trackings: deps.TrackingRepo,
		projects:  deps.ProjectRepo,
		tasks:     deps.TaskRepo,
		cache:     deps.Cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Refresh reloads every collection concurrently, joins fail-fast, and
// recomputes the snapshot. A refresh triggered later always wins: a slower,
// older reload finds its generation stale and its result is discarded.
func (s *DashboardService) Refresh(ctx context.Context) (*DashboardSnapshot, error) {
	generation := s.generation.Add(1)

	var (
		sheets    []domain.QualitySheet
		trackings []domain.TrackingSheet
		projects  []domain.Project
		tasks     []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sheets, err = s.sheets.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		trackings, err = s.trackings.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.projects.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.tasks.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := s.compute(generation, sheets, trackings, projects, tasks, time.Now())
	s.store(ctx, snapshot)
	return snapshot, nil
}

// Snapshot returns the latest computed snapshot, refreshing when none exists
// yet.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest != nil {
		return latest, nil
	}
	return s.Refresh(ctx)
}

func (s *DashboardService) compute(generation int64, sheets []domain.QualitySheet, trackings []domain.TrackingSheet, projects []domain.Project, tasks []domain.Task, now time.Time) *DashboardSnapshot {
	weights := analytics.Weights{
		Conformity:           s.cfg.WeightConformity,
		Efficiency:           s.cfg.WeightEfficiency,
		DataQuality:          s.cfg.WeightDataQuality,
		DelayPenalty:         s.cfg.DelayPenalty,
		EfficiencyConformity: s.cfg.EfficiencyConformity,
	}

	statusCounts := make(map[string]int)
	var blocked int
	for _, sheet := range sheets {
		statusCounts[analytics.NormalizeStatus(sheet.Status)]++
		if analytics.IsBlocked(sheet, trackings) {
			blocked++
		}
	}

	overdue := make([]OverdueEntry, 0)
	for _, o := range analytics.Overdue(sheets, trackings, s.cfg.OverdueThresholdDays) {
		overdue = append(overdue, OverdueEntry{
			SheetID:   o.Sheet.ID,
			Reference: o.Sheet.Reference,
			Title:     o.Sheet.Title,
			Delay:     o.Delay,
		})
	}

	dates := make([]time.Time, 0, len(trackings))
	for _, t := range trackings {
		dates = append(dates, t.TrackingDate)
	}

	conformity := analytics.ConformityRate(trackings, s.cfg.ConformityCutoff)
	meanDelay := analytics.MeanDelay(trackings)
	efficiency := weights.EfficiencyScore(meanDelay, conformity)
	dataQuality := analytics.DataQualityBonus(trackings)

	return &DashboardSnapshot{
		Generation:  generation,
		GeneratedAt: now,
		KPI: KPIReport{
			TotalSheets:    len(sheets),
			TotalTrackings: len(trackings),
			TotalProjects:  len(projects),
			TotalTasks:     len(tasks),
			ConformityRate: conformity,
			StatusCounts:   statusCounts,
			BlockedSheets:  blocked,
			Overdue:        overdue,
			SheetsPerMonth: analytics.MonthlySeries(dates, 6, now),
		},
		AI: AIReport{
			ConformityRate: conformity,
			MeanDelay:      meanDelay,
			Efficiency:     efficiency,
			DataQuality:    dataQuality,
			Score:          weights.Score(conformity, efficiency, dataQuality),
		},
	}
}

// store publishes the snapshot unless a newer refresh has started since.
func (s *DashboardService) store(ctx context.Context, snapshot *DashboardSnapshot) {
	if snapshot.Generation != s.generation.Load() {
		return
	}

	s.mu.Lock()
	if s.latest == nil || s.latest.Generation <= snapshot.Generation {
		s.latest = snapshot
	}
	s.mu.Unlock()

	if s.cache == nil || s.cache.Client == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, snapshotCacheKey, payload, 2*s.cfg.RefreshInterval()).Err(); err != nil {
		s.logger.Warn("failed to cache dashboard snapshot", zap.Error(err))
	}
}
