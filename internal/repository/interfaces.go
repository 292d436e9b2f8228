package repository

import (
	"context"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// EffectFilter narrows an effect listing. Sphere and MinRating go together.
type EffectFilter struct {
	Name      string
	Sphere    domain.Sphere
	MinRating int
	Limit     int
	Offset    int
}

type EffectRepository interface {
	// FindOrCreate returns the effect named effect.Name, inserting effect
	// when no such row exists. The bool reports whether an insert happened.
	FindOrCreate(ctx context.Context, effect *domain.Effect) (*domain.Effect, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Effect, error)
	GetByName(ctx context.Context, name string) (*domain.Effect, error)
	List(ctx context.Context, filter EffectFilter) ([]*domain.Effect, error)
	Update(ctx context.Context, effect *domain.Effect) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ResonanceRepository interface {
	FindOrCreate(ctx context.Context, resonance *domain.Resonance) (*domain.Resonance, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resonance, error)
	GetByName(ctx context.Context, name string) (*domain.Resonance, error)
	GetAll(ctx context.Context) ([]*domain.Resonance, error)
}

type WonderFilter struct {
	Kind   domain.WonderKind
	Name   string
	Limit  int
	Offset int
}

type WonderRepository interface {
	// Save creates the wonder when its ID is nil and replaces it otherwise,
	// together with its resonance ratings and powers. newEffects are
	// find-or-created first and overwritten with the stored rows.
	Save(ctx context.Context, wonder *domain.Wonder, newEffects []*domain.Effect) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wonder, error)
	GetByName(ctx context.Context, kind domain.WonderKind, name string) (*domain.Wonder, error)
	List(ctx context.Context, filter WonderFilter) ([]*domain.Wonder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User      UserRepository
	Session   SessionRepository
	Effect    EffectRepository
	Resonance ResonanceRepository
	Wonder    WonderRepository
}
