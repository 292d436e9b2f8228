package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository/postgres"
	"github.com/dom/ascension-codex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResonanceRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewResonanceRepository(testDB.DB)
	ctx := context.Background()

	fiery, created, err := repo.FindOrCreate(ctx, &domain.Resonance{Name: "Fiery", Description: "Dynamic"})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := repo.FindOrCreate(ctx, &domain.Resonance{Name: "Fiery"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, fiery.ID, again.ID)
	assert.Equal(t, "Dynamic", again.Description)

	lower, created, err := repo.FindOrCreate(ctx, &domain.Resonance{Name: "fiery", Description: "Hot"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, fiery.ID, lower.ID)
	assert.Equal(t, "Fiery", lower.Name)
	assert.Equal(t, "Dynamic", lower.Description)

	testutil.NewResonanceBuilder().WithName("Cold").Build(t, testDB.DB)

	got, err := repo.GetByName(ctx, "fiery")
	require.NoError(t, err)
	assert.Equal(t, fiery.ID, got.ID)

	got, err = repo.GetByID(ctx, fiery.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fiery", got.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Cold", all[0].Name)
	assert.Equal(t, "Fiery", all[1].Name)
}
