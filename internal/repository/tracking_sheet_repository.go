package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/quality-service/internal/domain"
)

// TrackingSheetRepository manages tracking-sheet persistence.
type TrackingSheetRepository interface {
	Create(ctx context.Context, tracking *domain.TrackingSheet) error
	Update(ctx context.Context, tracking *domain.TrackingSheet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.TrackingSheet, error)
	List(ctx context.Context) ([]domain.TrackingSheet, error)
	ListBySheet(ctx context.Context, sheetID string) ([]domain.TrackingSheet, error)
}

type trackingSheetRepository struct {
	pool *pgxpool.Pool
}

// NewTrackingSheetRepository builds the repository.
func NewTrackingSheetRepository(pool *pgxpool.Pool) TrackingSheetRepository {
	return &trackingSheetRepository{pool: pool}
}

func (r *trackingSheetRepository) Create(ctx context.Context, tracking *domain.TrackingSheet) error {
	const query = `
        INSERT INTO tracking_sheets (sheet_id, progress_state, conformity, delay, indicator, comment, tracking_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		tracking.SheetID,
		tracking.ProgressState,
		tracking.Conformity,
		tracking.Delay,
		tracking.Indicator,
		tracking.Comment,
		tracking.TrackingDate,
	).Scan(&tracking.ID, &tracking.CreatedAt, &tracking.UpdatedAt)
}

func (r *trackingSheetRepository) Update(ctx context.Context, tracking *domain.TrackingSheet) error {
	const query = `
        UPDATE tracking_sheets
        SET progress_state=$1, conformity=$2, delay=$3, indicator=$4, comment=$5, tracking_date=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		tracking.ProgressState,
		tracking.Conformity,
		tracking.Delay,
		tracking.Indicator,
		tracking.Comment,
		tracking.TrackingDate,
		tracking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *trackingSheetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tracking_sheets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *trackingSheetRepository) GetByID(ctx context.Context, id string) (*domain.TrackingSheet, error) {
	const query = `
        SELECT id, sheet_id, progress_state, conformity, delay, indicator, comment, tracking_date, created_at, updated_at
        FROM tracking_sheets WHERE id=$1`

	var tracking domain.TrackingSheet
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tracking.ID,
		&tracking.SheetID,
		&tracking.ProgressState,
		&tracking.Conformity,
		&tracking.Delay,
		&tracking.Indicator,
		&tracking.Comment,
		&tracking.TrackingDate,
		&tracking.CreatedAt,
		&tracking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tracking, nil
}

func (r *trackingSheetRepository) List(ctx context.Context) ([]domain.TrackingSheet, error) {
	const query = `
        SELECT id, sheet_id, progress_state, conformity, delay, indicator, comment, tracking_date, created_at, updated_at
        FROM tracking_sheets ORDER BY tracking_date DESC`
	return r.list(ctx, query)
}

func (r *trackingSheetRepository) ListBySheet(ctx context.Context, sheetID string) ([]domain.TrackingSheet, error) {
	const query = `
        SELECT id, sheet_id, progress_state, conformity, delay, indicator, comment, tracking_date, created_at, updated_at
        FROM tracking_sheets WHERE sheet_id=$1 ORDER BY tracking_date DESC`
	return r.list(ctx, query, sheetID)
}

func (r *trackingSheetRepository) list(ctx context.Context, query string, args ...any) ([]domain.TrackingSheet, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TrackingSheet
	for rows.Next() {
		var tracking domain.TrackingSheet
		if err := rows.Scan(
			&tracking.ID,
			&tracking.SheetID,
			&tracking.ProgressState,
			&tracking.Conformity,
			&tracking.Delay,
			&tracking.Indicator,
			&tracking.Comment,
			&tracking.TrackingDate,
			&tracking.CreatedAt,
			&tracking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tracking)
	}
	return result, rows.Err()
}
