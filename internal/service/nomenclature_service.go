package service

import (
	"context"
	"strings"

	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/repository"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// NomenclatureService manages reference values.
type NomenclatureService struct {
	entries repository.NomenclatureRepository
}

// NewNomenclatureService constructs the service.
func NewNomenclatureService(entries repository.NomenclatureRepository) *NomenclatureService {
	return &NomenclatureService{entries: entries}
}

// NomenclatureInput describes create/update payloads.
type NomenclatureInput struct {
	Type     string
	Code     string
	Label    string
	Position int
	IsActive bool
}

// Create inserts an entry, rejecting a duplicate type+code pair.
func (s *NomenclatureService) Create(ctx context.Context, input NomenclatureInput) (*domain.Nomenclature, error) {
	existing, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	entryType := strings.TrimSpace(input.Type)
	code := strings.TrimSpace(input.Code)
	for _, e := range existing {
		if strings.EqualFold(e.Type, entryType) && strings.EqualFold(e.Code, code) {
			return nil, apperrors.NewConflict("nomenclature entry already exists", map[string]any{
				"type": entryType, "code": code,
			})
		}
	}

	entry := &domain.Nomenclature{
		Type:     entryType,
		Code:     code,
		Label:    strings.TrimSpace(input.Label),
		Position: input.Position,
		IsActive: input.IsActive,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update applies the input and returns the stored entry.
func (s *NomenclatureService) Update(ctx context.Context, id string, input NomenclatureInput) (*domain.Nomenclature, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Type = strings.TrimSpace(input.Type)
	entry.Code = strings.TrimSpace(input.Code)
	entry.Label = strings.TrimSpace(input.Label)
	entry.Position = input.Position
	entry.IsActive = input.IsActive

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.entries.GetByID(ctx, id)
}

// Delete removes an entry.
func (s *NomenclatureService) Delete(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// List returns all entries, or the active entries of one type.
func (s *NomenclatureService) List(ctx context.Context, entryType string) ([]domain.Nomenclature, error) {
	if strings.TrimSpace(entryType) != "" {
		return s.entries.ListByType(ctx, strings.TrimSpace(entryType))
	}
	return s.entries.List(ctx)
}
