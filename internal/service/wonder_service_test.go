package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/dom/ascension-codex/internal/repository/postgres"
	"github.com/dom/ascension-codex/internal/service"
	"github.com/dom/ascension-codex/internal/testutil"
	"github.com/dom/ascension-codex/internal/wonderform"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zapNop() *zap.Logger { return zap.NewNop() }

type wonderFixture struct {
	services  *service.Services
	effect    *domain.Effect
	resonance *domain.Resonance
	user      *domain.User
}

func newWonderFixture(t *testing.T) *wonderFixture {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	return &wonderFixture{
		services:  service.NewServices(repos, testutil.TestConfig(), zapNop()),
		effect:    testutil.NewEffectBuilder().WithName("Ball of Abysmal Flame").WithSphere(domain.SphereForces, 3).Build(t, testDB.DB),
		resonance: testutil.NewResonanceBuilder().WithName("Fiery").Build(t, testDB.DB),
		user:      user,
	}
}

func TestWonderService_Create(t *testing.T) {
	f := newWonderFixture(t)
	ctx := context.Background()

	item, err := f.services.Wonder.Create(ctx, testutil.CharmInput("Ember Bead", f.effect, f.resonance).Values(), f.user.ID)
	require.NoError(t, err)
	require.IsType(t, &domain.Charm{}, item)

	w := item.Base()
	assert.NotEqual(t, uuid.Nil, w.ID)
	require.NotNil(t, w.CreatedByID)
	assert.Equal(t, f.user.ID, *w.CreatedByID)
	require.NotNil(t, w.Power)
	assert.Equal(t, f.effect.ID, w.Power.ID)
	require.Len(t, w.ResonanceRatings, 1)
	assert.Equal(t, "Fiery", w.ResonanceRatings[0].Resonance.Name)
}

func TestWonderService_CreateByName(t *testing.T) {
	f := newWonderFixture(t)
	ctx := context.Background()

	in := testutil.CharmInput("Ember Bead", f.effect, f.resonance)
	in.Resonance[0].Resonance = "fiery"
	in.Effects[0].Effect = "Ball of Abysmal Flame"

	_, err := f.services.Wonder.Create(ctx, in.Values(), f.user.ID)
	require.NoError(t, err)
}

func TestWonderService_CreateRejected(t *testing.T) {
	f := newWonderFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*wonderform.Input)
		message string
	}{
		{
			name:    "charm without arete",
			mutate:  func(in *wonderform.Input) { in.Arete = nil },
			message: wonderform.AreteRequiredMessage,
		},
		{
			name:    "resonance below rank",
			mutate:  func(in *wonderform.Input) { in.Rank = 3 },
			message: wonderform.ResonanceTotalMessage,
		},
		{
			name:    "unknown effect",
			mutate:  func(in *wonderform.Input) { in.Effects[0].Effect = uuid.NewString() },
			message: "effect-0-effect",
		},
		{
			name:    "unknown resonance",
			mutate:  func(in *wonderform.Input) { in.Resonance[0].Resonance = "Gloomy" },
			message: "resonance-0-resonance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.CharmInput("Broken", f.effect, f.resonance)
			tt.mutate(&in)

			_, err := f.services.Wonder.Create(ctx, in.Values(), f.user.ID)
			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.True(t, verr.Errors.Contains(tt.message), verr.Errors.String())
		})
	}

	list, err := f.services.Wonder.List(ctx, repository.WonderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWonderService_Update(t *testing.T) {
	f := newWonderFixture(t)
	ctx := context.Background()

	item, err := f.services.Wonder.Create(ctx, testutil.CharmInput("Ember Bead", f.effect, f.resonance).Values(), f.user.ID)
	require.NoError(t, err)
	id := item.Base().ID

	in := testutil.CharmInput("Ember Bead", f.effect, f.resonance)
	in.WonderType = string(domain.WonderKindTalisman)
	in.Rank = 2
	in.Resonance[0].Rating = 2
	in.Effects = append(in.Effects, wonderform.EffectInput{
		Mode:    wonderform.ModeCreate,
		Name:    "Weather Sense",
		Spheres: map[domain.Sphere]int{domain.SphereCorrespondence: 1},
	})

	updated, err := f.services.Wonder.Update(ctx, id, in.Values())
	require.NoError(t, err)
	require.IsType(t, &domain.Talisman{}, updated)

	w := updated.Base()
	assert.Equal(t, id, w.ID)
	assert.Equal(t, 2, w.Rank)
	require.NotNil(t, w.CreatedByID)
	assert.Equal(t, f.user.ID, *w.CreatedByID)
	assert.Nil(t, w.Power)
	require.Len(t, w.Powers, 2)
	assert.Equal(t, "Ball of Abysmal Flame", w.Powers[0].Name)
	assert.Equal(t, "Weather Sense", w.Powers[1].Name)

	_, err = f.services.Wonder.Update(ctx, uuid.New(), in.Values())
	assert.ErrorIs(t, err, domain.ErrWonderNotFound)
}

func TestWonderService_ListGetDelete(t *testing.T) {
	f := newWonderFixture(t)
	ctx := context.Background()

	charm, err := f.services.Wonder.Create(ctx, testutil.CharmInput("Ember Bead", f.effect, f.resonance).Values(), f.user.ID)
	require.NoError(t, err)

	artifact := testutil.CharmInput("Flame Sword", f.effect, f.resonance)
	artifact.WonderType = string(domain.WonderKindArtifact)
	artifact.Arete = nil
	_, err = f.services.Wonder.Create(ctx, artifact.Values(), f.user.ID)
	require.NoError(t, err)

	all, err := f.services.Wonder.List(ctx, repository.WonderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	charms, err := f.services.Wonder.List(ctx, repository.WonderFilter{Kind: domain.WonderKindCharm})
	require.NoError(t, err)
	require.Len(t, charms, 1)
	assert.Equal(t, domain.WonderKindCharm, charms[0].WonderKind())

	_, err = f.services.Wonder.List(ctx, repository.WonderFilter{Kind: "fetish"})
	assert.ErrorIs(t, err, domain.ErrInvalidWonderKind)

	got, err := f.services.Wonder.Get(ctx, charm.Base().ID)
	require.NoError(t, err)
	assert.Equal(t, "Ember Bead", got.Base().Name)

	require.NoError(t, f.services.Wonder.Delete(ctx, charm.Base().ID))
	_, err = f.services.Wonder.Get(ctx, charm.Base().ID)
	assert.ErrorIs(t, err, domain.ErrWonderNotFound)
	assert.ErrorIs(t, f.services.Wonder.Delete(ctx, charm.Base().ID), domain.ErrWonderNotFound)
}
