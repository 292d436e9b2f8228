package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/dom/ascension-codex/internal/seed"
	"github.com/dom/ascension-codex/internal/wonderform"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SeedService struct {
	repos   *repository.Repositories
	catalog wonderform.Catalog
	log     *zap.Logger
}

func NewSeedService(repos *repository.Repositories, catalog wonderform.Catalog, log *zap.Logger) *SeedService {
	return &SeedService{
		repos:   repos,
		catalog: catalog,
		log:     log,
	}
}

type SeedReport struct {
	ResonancesCreated int `json:"resonancesCreated"`
	ResonancesExisted int `json:"resonancesExisted"`
	EffectsCreated    int `json:"effectsCreated"`
	EffectsExisted    int `json:"effectsExisted"`
	WondersCreated    int `json:"wondersCreated"`
	WondersExisted    int `json:"wondersExisted"`
	// Rejected maps a wonder name to its form errors
	Rejected map[string][]string `json:"rejected,omitempty"`
}

// Apply loads the catalog idempotently. Resonances and effects are
// matched by name, wonders by kind and name. A wonder the form rejects is
// recorded in the report and skipped.
func (s *SeedService) Apply(ctx context.Context, c *seed.Catalog) (*SeedReport, error) {
	report := &SeedReport{}

	for _, r := range c.Resonances {
		_, created, err := s.repos.Resonance.FindOrCreate(ctx, &domain.Resonance{
			Name:        r.Name,
			Description: r.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("seed resonance %q: %w", r.Name, err)
		}
		if created {
			report.ResonancesCreated++
		} else {
			report.ResonancesExisted++
		}
	}

	for _, e := range c.Effects {
		effect, err := e.Domain()
		if err != nil {
			return nil, fmt.Errorf("seed effect %q: %w", e.Name, err)
		}
		_, created, err := s.repos.Effect.FindOrCreate(ctx, effect)
		if err != nil {
			return nil, fmt.Errorf("seed effect %q: %w", e.Name, err)
		}
		if created {
			report.EffectsCreated++
		} else {
			report.EffectsExisted++
		}
	}

	for _, w := range c.Wonders {
		kind, err := domain.ParseWonderKind(w.Kind)
		if err != nil {
			return nil, fmt.Errorf("seed wonder %q: %w", w.Name, err)
		}
		_, err = s.repos.Wonder.GetByName(ctx, kind, w.Name)
		if err == nil {
			report.WondersExisted++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("seed wonder %q: %w", w.Name, err)
		}

		form := wonderform.NewFromInput(w.Input(), s.catalog, wonderform.WithStore(s.repos.Wonder))
		if !form.IsValid(ctx) {
			if err := form.Err(); err != nil {
				return nil, fmt.Errorf("seed wonder %q: %w", w.Name, err)
			}
			if report.Rejected == nil {
				report.Rejected = map[string][]string{}
			}
			report.Rejected[w.Name] = form.Errors().Messages()
			s.log.Warn("seed wonder rejected",
				zap.String("name", w.Name),
				zap.Strings("errors", form.Errors().Messages()),
			)
			continue
		}
		if _, err := form.Save(ctx, true); err != nil {
			return nil, fmt.Errorf("seed wonder %q: %w", w.Name, err)
		}
		report.WondersCreated++
	}

	s.log.Info("catalog seeded",
		zap.Int("resonances", report.ResonancesCreated),
		zap.Int("effects", report.EffectsCreated),
		zap.Int("wonders", report.WondersCreated),
		zap.Int("rejected", len(report.Rejected)),
	)
	return report, nil
}
