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

type wonderRepository struct {
	db *gorm.DB
}

func NewWonderRepository(db *gorm.DB) *wonderRepository {
	return &wonderRepository{db: db}
}

// Save writes the wonder, its rating rows and its power links in one
// transaction
func (r *wonderRepository) Save(ctx context.Context, wonder *domain.Wonder, newEffects []*domain.Effect) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		effects := NewEffectRepository(tx)
		for _, e := range newEffects {
			stored, _, err := effects.FindOrCreate(ctx, e)
			if err != nil {
				return fmt.Errorf("find or create effect %q: %w", e.Name, err)
			}
			*e = *stored
		}

		wonder.PowerID = nil
		if wonder.Power != nil {
			id := wonder.Power.ID
			wonder.PowerID = &id
		}

		if wonder.ID == uuid.Nil {
			wonder.ID = uuid.New()
			if err := tx.Omit(clause.Associations).Create(wonder).Error; err != nil {
				return fmt.Errorf("create wonder: %w", err)
			}
		} else {
			result := tx.Omit(clause.Associations, "CreatedAt").Save(wonder)
			if result.Error != nil {
				return fmt.Errorf("update wonder: %w", result.Error)
			}
			if err := tx.Where("wonder_id = ?", wonder.ID).Delete(&domain.WonderResonanceRating{}).Error; err != nil {
				return fmt.Errorf("clear resonance ratings: %w", err)
			}
		}

		for i := range wonder.ResonanceRatings {
			wonder.ResonanceRatings[i].ID = uuid.New()
			wonder.ResonanceRatings[i].WonderID = wonder.ID
		}
		if len(wonder.ResonanceRatings) > 0 {
			if err := tx.Omit("Resonance").Create(&wonder.ResonanceRatings).Error; err != nil {
				return fmt.Errorf("create resonance ratings: %w", err)
			}
		}

		links := tx.Model(wonder).Association("Powers")
		if len(wonder.Powers) == 0 {
			if err := links.Clear(); err != nil {
				return fmt.Errorf("clear powers: %w", err)
			}
			return nil
		}
		if err := links.Replace(wonder.Powers); err != nil {
			return fmt.Errorf("link powers: %w", err)
		}
		return nil
	})
}

func (r *wonderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Power").
		Preload("Powers", func(db *gorm.DB) *gorm.DB { return db.Order("effects.name ASC") }).
		Preload("ResonanceRatings").
		Preload("ResonanceRatings.Resonance")
}

func (r *wonderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wonder, error) {
	var wonder domain.Wonder
	if err := r.preloaded(ctx).First(&wonder, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wonder, nil
}

func (r *wonderRepository) GetByName(ctx context.Context, kind domain.WonderKind, name string) (*domain.Wonder, error) {
	var wonder domain.Wonder
	if err := r.preloaded(ctx).First(&wonder, "kind = ? AND name = ?", kind, name).Error; err != nil {
		return nil, err
	}
	return &wonder, nil
}

func (r *wonderRepository) List(ctx context.Context, filter repository.WonderFilter) ([]*domain.Wonder, error) {
	q := r.preloaded(ctx)
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", containsPattern(filter.Name))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var wonders []*domain.Wonder
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "rank"}}).Order("name ASC").Limit(limit).Offset(filter.Offset).Find(&wonders).Error
	if err != nil {
		return nil, err
	}
	return wonders, nil
}

// Delete removes the wonder with its rating rows and power links. The
// effects themselves stay in the catalog.
func (r *wonderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wonder domain.Wonder
		if err := tx.First(&wonder, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Select("Powers", "ResonanceRatings").Delete(&wonder).Error
	})
}
