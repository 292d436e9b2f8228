// Package seed reads starter catalogs of resonances, effects and wonders
// from YAML.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/wonderform"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Resonances []Resonance `yaml:"resonances"`
	Effects    []Effect    `yaml:"effects"`
	Wonders    []Wonder    `yaml:"wonders"`
}

type Resonance struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Effect struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Spheres     map[string]int `yaml:"spheres"`
	Sources     []string       `yaml:"sources"`
}

type Wonder struct {
	Kind        string            `yaml:"kind"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Rank        int               `yaml:"rank"`
	Arete       *int              `yaml:"arete"`
	Resonance   []ResonanceRating `yaml:"resonance"`
	Effects     []string          `yaml:"effects"`
	NewEffects  []Effect          `yaml:"new_effects"`
}

type ResonanceRating struct {
	Name   string `yaml:"name"`
	Rating int    `yaml:"rating"`
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file; an empty path means Default
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document, rejecting unknown keys
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names and sphere keys. Wonder rules are left to the form.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	for i, r := range c.Resonances {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("resonances[%d]: name is required", i)
		}
		key := strings.ToLower(r.Name)
		if seen[key] {
			return fmt.Errorf("resonances[%d]: duplicate name %q", i, r.Name)
		}
		seen[key] = true
	}

	seen = map[string]bool{}
	for i, e := range c.Effects {
		if _, err := e.Domain(); err != nil {
			return fmt.Errorf("effects[%d]: %w", i, err)
		}
		key := strings.ToLower(e.Name)
		if seen[key] {
			return fmt.Errorf("effects[%d]: duplicate name %q", i, e.Name)
		}
		seen[key] = true
	}

	for i, w := range c.Wonders {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("wonders[%d]: name is required", i)
		}
		if _, err := domain.ParseWonderKind(w.Kind); err != nil {
			return fmt.Errorf("wonders[%d] %q: %w", i, w.Name, err)
		}
		for j, e := range w.NewEffects {
			if _, err := e.Domain(); err != nil {
				return fmt.Errorf("wonders[%d].new_effects[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

// Domain converts the entry into an unsaved effect
func (e Effect) Domain() (*domain.Effect, error) {
	effect := &domain.Effect{
		Name:        strings.TrimSpace(e.Name),
		Description: e.Description,
	}
	for name, rating := range e.Spheres {
		if err := effect.SetSphere(domain.Sphere(strings.ToLower(name)), rating); err != nil {
			return nil, fmt.Errorf("sphere %q: %w", name, err)
		}
	}
	effect.SetSources(e.Sources)
	if err := effect.Validate(); err != nil {
		return nil, err
	}
	return effect, nil
}

// Input maps the entry onto a form submission. Resonances and effects
// are referenced by name.
func (w Wonder) Input() wonderform.Input {
	in := wonderform.Input{
		WonderType:  w.Kind,
		Name:        w.Name,
		Description: w.Description,
		Rank:        w.Rank,
		Arete:       w.Arete,
	}
	for _, r := range w.Resonance {
		in.Resonance = append(in.Resonance, wonderform.ResonanceInput{Resonance: r.Name, Rating: r.Rating})
	}
	for _, name := range w.Effects {
		in.Effects = append(in.Effects, wonderform.EffectInput{Mode: wonderform.ModeSelect, Effect: name})
	}
	for _, e := range w.NewEffects {
		spheres := make(map[domain.Sphere]int, len(e.Spheres))
		for name, rating := range e.Spheres {
			spheres[domain.Sphere(strings.ToLower(name))] = rating
		}
		in.Effects = append(in.Effects, wonderform.EffectInput{
			Mode:        wonderform.ModeCreate,
			Name:        e.Name,
			Description: e.Description,
			Spheres:     spheres,
			Sources:     e.Sources,
		})
	}
	return in
}
