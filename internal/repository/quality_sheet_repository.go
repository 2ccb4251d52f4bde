package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/quality-service/internal/domain"
)

// QualitySheetRepository manages quality-sheet persistence.
type QualitySheetRepository interface {
	Create(ctx context.Context, sheet *domain.QualitySheet) error
	Update(ctx context.Context, sheet *domain.QualitySheet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.QualitySheet, error)
	List(ctx context.Context) ([]domain.QualitySheet, error)
}

type qualitySheetRepository struct {
	pool *pgxpool.Pool
}

// NewQualitySheetRepository builds the repository.
func NewQualitySheetRepository(pool *pgxpool.Pool) QualitySheetRepository {
	return &qualitySheetRepository{pool: pool}
}

func (r *qualitySheetRepository) Create(ctx context.Context, sheet *domain.QualitySheet) error {
	const query = `
        INSERT INTO quality_sheets (reference, title, type, status, responsible_id, description, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		sheet.Reference,
		sheet.Title,
		sheet.Type,
		sheet.Status,
		sheet.ResponsibleID,
		sheet.Description,
		sheet.StartDate,
		sheet.EndDate,
	).Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt)
}

func (r *qualitySheetRepository) Update(ctx context.Context, sheet *domain.QualitySheet) error {
	const query = `
        UPDATE quality_sheets
        SET title=$1, type=$2, status=$3, responsible_id=$4, description=$5, start_date=$6, end_date=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		sheet.Title,
		sheet.Type,
		sheet.Status,
		sheet.ResponsibleID,
		sheet.Description,
		sheet.StartDate,
		sheet.EndDate,
		sheet.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *qualitySheetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM quality_sheets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *qualitySheetRepository) GetByID(ctx context.Context, id string) (*domain.QualitySheet, error) {
	const query = `
        SELECT id, reference, title, type, status, responsible_id, description, start_date, end_date, created_at, updated_at
        FROM quality_sheets WHERE id=$1`

	var sheet domain.QualitySheet
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sheet.ID,
		&sheet.Reference,
		&sheet.Title,
		&sheet.Type,
		&sheet.Status,
		&sheet.ResponsibleID,
		&sheet.Description,
		&sheet.StartDate,
		&sheet.EndDate,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *qualitySheetRepository) List(ctx context.Context) ([]domain.QualitySheet, error) {
	const query = `
        SELECT id, reference, title, type, status, responsible_id, description, start_date, end_date, created_at, updated_at
        FROM quality_sheets ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.QualitySheet
	for rows.Next() {
		var sheet domain.QualitySheet
		if err := rows.Scan(
			&sheet.ID,
			&sheet.Reference,
			&sheet.Title,
			&sheet.Type,
			&sheet.Status,
			&sheet.ResponsibleID,
			&sheet.Description,
			&sheet.StartDate,
			&sheet.EndDate,
			&sheet.CreatedAt,
			&sheet.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sheet)
	}
	return result, rows.Err()
}
