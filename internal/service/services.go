package service

import (
	"github.com/dom/ascension-codex/internal/config"
	"github.com/dom/ascension-codex/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth      *AuthService
	Effect    *EffectService
	Resonance *ResonanceService
	Wonder    *WonderService
	Seed      *SeedService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *zap.Logger) *Services {
	catalog := NewCatalog(repos.Effect, repos.Resonance)
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		Effect:    NewEffectService(repos.Effect),
		Resonance: NewResonanceService(repos.Resonance),
		Wonder:    NewWonderService(repos.Wonder, catalog, log.Named("wonder")),
		Seed:      NewSeedService(repos, catalog, log.Named("seed")),
	}
}
