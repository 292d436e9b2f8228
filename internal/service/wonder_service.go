package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/dom/ascension-codex/internal/wonderform"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ValidationError carries the messages of a rejected submission
type ValidationError struct {
	Errors wonderform.Errors
}

func (e *ValidationError) Error() string {
	return "invalid wonder: " + e.Errors.String()
}

type WonderService struct {
	wonderRepo repository.WonderRepository
	catalog    wonderform.Catalog
	log        *zap.Logger
}

func NewWonderService(wonderRepo repository.WonderRepository, catalog wonderform.Catalog, log *zap.Logger) *WonderService {
	return &WonderService{
		wonderRepo: wonderRepo,
		catalog:    catalog,
		log:        log,
	}
}

// Create validates a submission and stores it as the kind it names
func (s *WonderService) Create(ctx context.Context, values url.Values, userID uuid.UUID) (domain.WonderItem, error) {
	form := wonderform.New(values, s.catalog,
		wonderform.WithStore(s.wonderRepo),
		wonderform.WithCreatedBy(userID),
	)
	item, err := s.submit(ctx, form)
	if err != nil {
		return nil, err
	}
	w := item.Base()
	s.log.Info("wonder created",
		zap.String("id", w.ID.String()),
		zap.String("kind", string(item.WonderKind())),
		zap.String("name", w.Name),
	)
	return item, nil
}

// Update replaces the wonder at id with a fresh submission. The kind may
// change; identity and creator are kept.
func (s *WonderService) Update(ctx context.Context, id uuid.UUID, values url.Values) (domain.WonderItem, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	form := wonderform.New(values, s.catalog,
		wonderform.WithStore(s.wonderRepo),
		wonderform.WithInstance(existing),
	)
	return s.submit(ctx, form)
}

func (s *WonderService) submit(ctx context.Context, form *wonderform.Form) (domain.WonderItem, error) {
	if !form.IsValid(ctx) {
		if err := form.Err(); err != nil {
			return nil, fmt.Errorf("validate wonder: %w", err)
		}
		return nil, &ValidationError{Errors: form.Errors()}
	}
	item, err := form.Save(ctx, true)
	if err != nil {
		return nil, err
	}
	// Reload so callers see preloaded powers and resonances
	return s.Get(ctx, item.Base().ID)
}

func (s *WonderService) Get(ctx context.Context, id uuid.UUID) (domain.WonderItem, error) {
	w, err := s.wonderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWonderNotFound
		}
		return nil, err
	}
	return domain.AsWonderItem(w)
}

func (s *WonderService) List(ctx context.Context, filter repository.WonderFilter) ([]domain.WonderItem, error) {
	if filter.Kind != "" && !filter.Kind.IsValid() {
		return nil, domain.ErrInvalidWonderKind
	}
	wonders, err := s.wonderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]domain.WonderItem, 0, len(wonders))
	for _, w := range wonders {
		item, err := domain.AsWonderItem(w)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *WonderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.wonderRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrWonderNotFound
	}
	return err
}
