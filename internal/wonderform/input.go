package wonderform

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
)

// Input is a structured submission. Values encodes it the way a rendered
// form would post it.
type Input struct {
	WonderType  string
	Name        string
	Description string
	Rank        int
	Arete       *int
	Resonance   []ResonanceInput
	Effects     []EffectInput
}

type ResonanceInput struct {
	Resonance string // id or name
	Rating    int
}

// EffectInput selects an existing effect (Mode select, Effect set) or
// describes a new one (Mode create)
type EffectInput struct {
	Mode        string
	Effect      string
	Name        string
	Description string
	Spheres     map[domain.Sphere]int
	Sources     []string
}

func (in Input) Values() url.Values {
	v := url.Values{}
	v.Set("wonder_type", in.WonderType)
	v.Set("name", in.Name)
	v.Set("description", in.Description)
	v.Set("rank", strconv.Itoa(in.Rank))
	if in.Arete != nil {
		v.Set("arete", strconv.Itoa(*in.Arete))
	}

	SetManagement(v, ResonancePrefix, len(in.Resonance))
	for i, r := range in.Resonance {
		v.Set(rowKey(ResonancePrefix, i, "resonance"), r.Resonance)
		v.Set(rowKey(ResonancePrefix, i, "rating"), strconv.Itoa(r.Rating))
	}

	SetManagement(v, EffectPrefix, len(in.Effects))
	for i, e := range in.Effects {
		v.Set(rowKey(EffectPrefix, i, "mode"), e.Mode)
		if e.Effect != "" {
			v.Set(rowKey(EffectPrefix, i, "effect"), e.Effect)
		}
		if e.Name != "" {
			v.Set(rowKey(EffectPrefix, i, "name"), e.Name)
		}
		if e.Description != "" {
			v.Set(rowKey(EffectPrefix, i, "description"), e.Description)
		}
		for s, rating := range e.Spheres {
			v.Set(rowKey(EffectPrefix, i, string(s)), strconv.Itoa(rating))
		}
		if len(e.Sources) > 0 {
			v.Set(rowKey(EffectPrefix, i, "sources"), strings.Join(e.Sources, SourceSeparator+" "))
		}
	}
	return v
}

// SetManagement writes a formset's management fields for total extra rows
func SetManagement(v url.Values, prefix string, total int) {
	v.Set(managementKey(prefix, TotalFormsField), strconv.Itoa(total))
	v.Set(managementKey(prefix, InitialFormsField), "0")
	v.Set(managementKey(prefix, MinNumFormsField), "0")
	v.Set(managementKey(prefix, MaxNumFormsField), strconv.Itoa(DefaultMaxNumForms))
}
