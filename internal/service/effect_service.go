package service

import (
	"context"
	"errors"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEffectExists = errors.New("effect name already exists")
	ErrEffectInUse  = errors.New("effect is granted by a wonder")
)

type EffectService struct {
	effectRepo repository.EffectRepository
}

func NewEffectService(effectRepo repository.EffectRepository) *EffectService {
	return &EffectService{effectRepo: effectRepo}
}

type EffectInput struct {
	Name        string                `json:"name" validate:"required,max=200"`
	Description string                `json:"description" validate:"max=4000"`
	Spheres     map[domain.Sphere]int `json:"spheres"`
	Sources     []string              `json:"sources"`
}

func (in EffectInput) build(effect *domain.Effect) error {
	effect.Name = strings.TrimSpace(in.Name)
	effect.Description = in.Description
	for _, s := range domain.AllSpheres {
		if err := effect.SetSphere(s, in.Spheres[s]); err != nil {
			return err
		}
	}
	for s := range in.Spheres {
		if !s.IsValid() {
			return domain.ErrInvalidSphere
		}
	}
	effect.SetSources(in.Sources)
	return effect.Validate()
}

func (s *EffectService) List(ctx context.Context, filter repository.EffectFilter) ([]*domain.Effect, error) {
	return s.effectRepo.List(ctx, filter)
}

func (s *EffectService) Get(ctx context.Context, id uuid.UUID) (*domain.Effect, error) {
	effect, err := s.effectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEffectNotFound
		}
		return nil, err
	}
	return effect, nil
}

// Create returns the stored effect for in.Name, inserting it first when
// the name is new. The bool reports whether an insert happened.
func (s *EffectService) Create(ctx context.Context, in EffectInput) (*domain.Effect, bool, error) {
	effect := &domain.Effect{}
	if err := in.build(effect); err != nil {
		return nil, false, err
	}
	return s.effectRepo.FindOrCreate(ctx, effect)
}

func (s *EffectService) Update(ctx context.Context, id uuid.UUID, in EffectInput) (*domain.Effect, error) {
	effect, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.build(effect); err != nil {
		return nil, err
	}
	if err := s.effectRepo.Update(ctx, effect); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEffectExists
		}
		return nil, err
	}
	return effect, nil
}

func (s *EffectService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.effectRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrEffectNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrEffectInUse
	}
	return err
}
