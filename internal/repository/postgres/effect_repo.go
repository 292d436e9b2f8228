package postgres

import (
	"context"
	"fmt"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 100

type effectRepository struct {
	db *gorm.DB
}

func NewEffectRepository(db *gorm.DB) *effectRepository {
	return &effectRepository{db: db}
}

// FindOrCreate inserts effect unless the name is taken, ignoring case.
// Only the name decides identity; the other fields are applied on insert
// only.
func (r *effectRepository) FindOrCreate(ctx context.Context, effect *domain.Effect) (*domain.Effect, bool, error) {
	if effect.ID == uuid.Nil {
		effect.ID = uuid.New()
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   lowerName,
		DoNothing: true,
	}).Create(effect)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return effect, true, nil
	}

	existing, err := r.GetByName(ctx, effect.Name)
	if err != nil {
		return nil, false, fmt.Errorf("load existing effect %q: %w", effect.Name, err)
	}
	return existing, false, nil
}

func (r *effectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Effect, error) {
	var effect domain.Effect
	if err := r.db.WithContext(ctx).First(&effect, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &effect, nil
}

func (r *effectRepository) GetByName(ctx context.Context, name string) (*domain.Effect, error) {
	var effect domain.Effect
	if err := r.db.WithContext(ctx).First(&effect, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, err
	}
	return &effect, nil
}

func (r *effectRepository) List(ctx context.Context, filter repository.EffectFilter) ([]*domain.Effect, error) {
	q := r.db.WithContext(ctx).Model(&domain.Effect{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", containsPattern(filter.Name))
	}
	if filter.Sphere != "" {
		if !filter.Sphere.IsValid() {
			return nil, domain.ErrInvalidSphere
		}
		// Sphere names double as column names
		q = q.Where(clause.Gte{Column: clause.Column{Name: string(filter.Sphere)}, Value: filter.MinRating})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var effects []*domain.Effect
	err := q.Order("name ASC").Limit(limit).Offset(filter.Offset).Find(&effects).Error
	if err != nil {
		return nil, err
	}
	return effects, nil
}

func (r *effectRepository) Update(ctx context.Context, effect *domain.Effect) error {
	return r.db.WithContext(ctx).Save(effect).Error
}

func (r *effectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Effect{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
