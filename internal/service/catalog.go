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

// repoCatalog resolves form references against the database. A reference
// is either a UUID or a name.
type repoCatalog struct {
	effects    repository.EffectRepository
	resonances repository.ResonanceRepository
}

func NewCatalog(effects repository.EffectRepository, resonances repository.ResonanceRepository) *repoCatalog {
	return &repoCatalog{effects: effects, resonances: resonances}
}

func (c *repoCatalog) FindEffect(ctx context.Context, ref string) (*domain.Effect, error) {
	ref = strings.TrimSpace(ref)
	var (
		effect *domain.Effect
		err    error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		effect, err = c.effects.GetByID(ctx, id)
	} else {
		effect, err = c.effects.GetByName(ctx, ref)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEffectNotFound
	}
	return effect, err
}

func (c *repoCatalog) FindResonance(ctx context.Context, ref string) (*domain.Resonance, error) {
	ref = strings.TrimSpace(ref)
	var (
		resonance *domain.Resonance
		err       error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		resonance, err = c.resonances.GetByID(ctx, id)
	} else {
		resonance, err = c.resonances.GetByName(ctx, ref)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResonanceNotFound
	}
	return resonance, err
}
