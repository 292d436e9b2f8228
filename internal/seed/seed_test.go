package seed_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/seed"
	"github.com/dom/ascension-codex/internal/wonderform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := seed.Default()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Resonances)
	assert.NotEmpty(t, c.Effects)
	require.NotEmpty(t, c.Wonders)

	for _, w := range c.Wonders {
		_, err := domain.ParseWonderKind(w.Kind)
		assert.NoError(t, err, w.Name)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `
resonances:
  - name: Fiery
effects:
  - name: Heal Other
    spheres: {Life: 2}
`,
		},
		{name: "empty document", yaml: ""},
		{name: "unknown key", yaml: "potions: []\n", wantErr: "parse catalog"},
		{name: "blank resonance", yaml: "resonances:\n  - description: x\n", wantErr: "resonances[0]: name is required"},
		{name: "duplicate resonance", yaml: "resonances:\n  - name: Fiery\n  - name: fiery\n", wantErr: "duplicate name"},
		{name: "duplicate effect", yaml: "effects:\n  - name: Heal Other\n  - name: heal other\n", wantErr: "effects[1]: duplicate name"},
		{name: "unknown sphere", yaml: "effects:\n  - name: X\n    spheres: {dreams: 1}\n", wantErr: "effects[0]: sphere \"dreams\""},
		{name: "rating out of range", yaml: "effects:\n  - name: X\n    spheres: {mind: 6}\n", wantErr: "effects[0]"},
		{name: "bad wonder kind", yaml: "wonders:\n  - kind: fetish\n    name: X\n", wantErr: "invalid wonder type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resonances:\n  - name: Cold\n"), 0o600))

	c, err := seed.Load(path)
	require.NoError(t, err)
	require.Len(t, c.Resonances, 1)
	assert.Equal(t, "Cold", c.Resonances[0].Name)

	_, err = seed.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEffect_Domain(t *testing.T) {
	e := seed.Effect{
		Name:    " Heal Other ",
		Spheres: map[string]int{"Life": 2, "prime": 1},
		Sources: []string{"p. 196"},
	}
	got, err := e.Domain()
	require.NoError(t, err)
	assert.Equal(t, "Heal Other", got.Name)
	assert.Equal(t, 2, got.Life)
	assert.Equal(t, 1, got.Prime)
	assert.Equal(t, []string{"p. 196"}, got.SourceList())
}

func TestWonder_Input(t *testing.T) {
	arete := 3
	w := seed.Wonder{
		Kind:      "talisman",
		Name:      "Storm Crown",
		Rank:      3,
		Arete:     &arete,
		Resonance: []seed.ResonanceRating{{Name: "Fiery", Rating: 3}},
		Effects:   []string{"Call Lightning"},
		NewEffects: []seed.Effect{
			{Name: "Weather Sense", Spheres: map[string]int{"Forces": 1}},
		},
	}

	in := w.Input()
	assert.Equal(t, "talisman", in.WonderType)
	assert.Equal(t, &arete, in.Arete)
	assert.Equal(t, []wonderform.ResonanceInput{{Resonance: "Fiery", Rating: 3}}, in.Resonance)
	require.Len(t, in.Effects, 2)
	assert.Equal(t, wonderform.EffectInput{Mode: wonderform.ModeSelect, Effect: "Call Lightning"}, in.Effects[0])
	assert.Equal(t, wonderform.ModeCreate, in.Effects[1].Mode)
	assert.Equal(t, 1, in.Effects[1].Spheres[domain.SphereForces])

	values := in.Values()
	assert.Equal(t, "2", values.Get("effect-TOTAL_FORMS"))
	assert.Equal(t, "Weather Sense", values.Get("effect-1-name"))
}
