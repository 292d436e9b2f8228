package postgres

import (
	"context"
	"fmt"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resonanceRepository struct {
	db *gorm.DB
}

func NewResonanceRepository(db *gorm.DB) *resonanceRepository {
	return &resonanceRepository{db: db}
}

func (r *resonanceRepository) FindOrCreate(ctx context.Context, resonance *domain.Resonance) (*domain.Resonance, bool, error) {
	if resonance.ID == uuid.Nil {
		resonance.ID = uuid.New()
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   lowerName,
		DoNothing: true,
	}).Create(resonance)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return resonance, true, nil
	}

	existing, err := r.GetByName(ctx, resonance.Name)
	if err != nil {
		return nil, false, fmt.Errorf("load existing resonance %q: %w", resonance.Name, err)
	}
	return existing, false, nil
}

func (r *resonanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resonance, error) {
	var resonance domain.Resonance
	if err := r.db.WithContext(ctx).First(&resonance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resonance, nil
}

// GetByName matches case-insensitively, like the name index
func (r *resonanceRepository) GetByName(ctx context.Context, name string) (*domain.Resonance, error) {
	var resonance domain.Resonance
	if err := r.db.WithContext(ctx).First(&resonance, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &resonance, nil
}

func (r *resonanceRepository) GetAll(ctx context.Context) ([]*domain.Resonance, error) {
	var resonances []*domain.Resonance
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&resonances).Error; err != nil {
		return nil, err
	}
	return resonances, nil
}
