package domain_test

import (
	"testing"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWonderKind(t *testing.T) {
	for _, kind := range domain.AllWonderKinds {
		got, err := domain.ParseWonderKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	_, err := domain.ParseWonderKind("fetish")
	assert.ErrorIs(t, err, domain.ErrInvalidWonderKind)

	_, err = domain.ParseWonderKind("")
	assert.ErrorIs(t, err, domain.ErrInvalidWonderKind)
}

func TestWonderKind_Rules(t *testing.T) {
	tests := []struct {
		kind          domain.WonderKind
		requiresArete bool
		singlePower   bool
	}{
		{domain.WonderKindCharm, true, true},
		{domain.WonderKindArtifact, false, true},
		{domain.WonderKindTalisman, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.requiresArete, tt.kind.RequiresArete())
			assert.Equal(t, tt.singlePower, tt.kind.SinglePower())
		})
	}
}

func TestNewWonderItem(t *testing.T) {
	tests := []struct {
		kind   domain.WonderKind
		assert func(*testing.T, domain.WonderItem)
	}{
		{domain.WonderKindCharm, func(t *testing.T, item domain.WonderItem) {
			assert.IsType(t, &domain.Charm{}, item)
		}},
		{domain.WonderKindArtifact, func(t *testing.T, item domain.WonderItem) {
			assert.IsType(t, &domain.Artifact{}, item)
		}},
		{domain.WonderKindTalisman, func(t *testing.T, item domain.WonderItem) {
			assert.IsType(t, &domain.Talisman{}, item)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w := &domain.Wonder{Name: "Test Wonder", Rank: 1}
			item, err := domain.NewWonderItem(tt.kind, w)
			require.NoError(t, err)
			tt.assert(t, item)
			assert.Equal(t, tt.kind, item.WonderKind())
			assert.Equal(t, tt.kind, item.Base().Kind)
			assert.Same(t, w, item.Base())
		})
	}

	_, err := domain.NewWonderItem("fetish", &domain.Wonder{})
	assert.ErrorIs(t, err, domain.ErrInvalidWonderKind)
}

func TestWonder_Effects(t *testing.T) {
	power := &domain.Effect{Name: "Spark"}
	others := []*domain.Effect{{Name: "Ward"}, {Name: "Mend"}}

	charm := &domain.Wonder{Kind: domain.WonderKindCharm, Power: power, Powers: others}
	assert.Equal(t, []*domain.Effect{power}, charm.Effects())

	empty := &domain.Wonder{Kind: domain.WonderKindArtifact}
	assert.Nil(t, empty.Effects())

	talisman := &domain.Wonder{Kind: domain.WonderKindTalisman, Power: power, Powers: others}
	assert.Equal(t, others, talisman.Effects())
}

func TestWonder_ResonanceTotal(t *testing.T) {
	w := &domain.Wonder{
		ResonanceRatings: []domain.WonderResonanceRating{{Rating: 2}, {Rating: 1}, {Rating: 0}},
	}
	assert.Equal(t, 3, w.ResonanceTotal())
	assert.Equal(t, 0, (&domain.Wonder{}).ResonanceTotal())
}
