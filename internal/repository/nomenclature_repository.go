package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/quality-service/internal/domain"
)

// NomenclatureRepository manages reference-value persistence.
type NomenclatureRepository interface {
	Create(ctx context.Context, entry *domain.Nomenclature) error
	Update(ctx context.Context, entry *domain.Nomenclature) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Nomenclature, error)
	List(ctx context.Context) ([]domain.Nomenclature, error)
	ListByType(ctx context.Context, entryType string) ([]domain.Nomenclature, error)
}

type nomenclatureRepository struct {
	pool *pgxpool.Pool
}

// NewNomenclatureRepository builds the repository.
func NewNomenclatureRepository(pool *pgxpool.Pool) NomenclatureRepository {
	return &nomenclatureRepository{pool: pool}
}

func (r *nomenclatureRepository) Create(ctx context.Context, entry *domain.Nomenclature) error {
	const query = `
        INSERT INTO nomenclatures (type, code, label, position, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		entry.Type,
		entry.Code,
		entry.Label,
		entry.Position,
		entry.IsActive,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

func (r *nomenclatureRepository) Update(ctx context.Context, entry *domain.Nomenclature) error {
	const query = `
        UPDATE nomenclatures SET type=$1, code=$2, label=$3, position=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		entry.Type,
		entry.Code,
		entry.Label,
		entry.Position,
		entry.IsActive,
		entry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *nomenclatureRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM nomenclatures WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *nomenclatureRepository) GetByID(ctx context.Context, id string) (*domain.Nomenclature, error) {
	const query = `
        SELECT id, type, code, label, position, is_active, created_at, updated_at
        FROM nomenclatures WHERE id=$1`

	var entry domain.Nomenclature
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.Type,
		&entry.Code,
		&entry.Label,
		&entry.Position,
		&entry.IsActive,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *nomenclatureRepository) List(ctx context.Context) ([]domain.Nomenclature, error) {
	const query = `
        SELECT id, type, code, label, position, is_active, created_at, updated_at
        FROM nomenclatures ORDER BY type, position`
	return r.list(ctx, query)
}

func (r *nomenclatureRepository) ListByType(ctx context.Context, entryType string) ([]domain.Nomenclature, error) {
	const query = `
        SELECT id, type, code, label, position, is_active, created_at, updated_at
        FROM nomenclatures WHERE type=$1 AND is_active = TRUE ORDER BY position`
	return r.list(ctx, query, entryType)
}

func (r *nomenclatureRepository) list(ctx context.Context, query string, args ...any) ([]domain.Nomenclature, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Nomenclature
	for rows.Next() {
		var entry domain.Nomenclature
		if err := rows.Scan(
			&entry.ID,
			&entry.Type,
			&entry.Code,
			&entry.Label,
			&entry.Position,
			&entry.IsActive,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
