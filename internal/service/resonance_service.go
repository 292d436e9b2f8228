package service

import (
	"context"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
)

type ResonanceService struct {
	resonanceRepo repository.ResonanceRepository
}

func NewResonanceService(resonanceRepo repository.ResonanceRepository) *ResonanceService {
	return &ResonanceService{resonanceRepo: resonanceRepo}
}

type ResonanceInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

func (s *ResonanceService) List(ctx context.Context) ([]*domain.Resonance, error) {
	return s.resonanceRepo.GetAll(ctx)
}

// Create find-or-creates by name
func (s *ResonanceService) Create(ctx context.Context, in ResonanceInput) (*domain.Resonance, bool, error) {
	return s.resonanceRepo.FindOrCreate(ctx, &domain.Resonance{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	})
}
