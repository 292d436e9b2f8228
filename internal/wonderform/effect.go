package wonderform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/validation"
	"github.com/google/uuid"
)

const EffectPrefix = "effect"

// Effect row modes
const (
	ModeSelect = "select"
	ModeCreate = "create"
)

// SourceSeparator splits the sources field of an inline effect
const SourceSeparator = ";"

// CleanedEffect is one granted power. New effects have not been stored yet
// and are find-or-created by name on save.
type CleanedEffect struct {
	Effect *domain.Effect
	New    bool
}

// EffectFormSet collects the powers a wonder grants. Each row either
// selects an existing Effect (by id or name) or describes a new one inline.
type EffectFormSet struct {
	formset
	cleaned []CleanedEffect
}

type newEffectFields struct {
	Name        string `form:"name" validate:"required,max=200"`
	Description string `form:"description" validate:"max=4000"`
}

func newEffectFormSet(values url.Values) *EffectFormSet {
	return &EffectFormSet{formset: newFormset(EffectPrefix, values)}
}

func (fs *EffectFormSet) rowChanged(i int) bool {
	if fs.get(i, "mode") == ModeCreate {
		return true
	}
	raws := []string{fs.get(i, "effect"), fs.get(i, "name"), fs.get(i, "description"), fs.get(i, "sources")}
	for _, s := range domain.AllSpheres {
		raws = append(raws, fs.get(i, string(s)))
	}
	return changed(raws...)
}

func (fs *EffectFormSet) clean(ctx context.Context, catalog Catalog) error {
	if !fs.readManagement() {
		return nil
	}

	seenIDs := make(map[uuid.UUID]bool)
	seenNames := make(map[string]bool)
	duplicate := false

	for i := 0; i < fs.mgmt.total; i++ {
		if fs.deleted(i) {
			continue
		}
		if i >= fs.mgmt.initial && !fs.rowChanged(i) {
			continue
		}

		mode := fs.get(i, "mode")
		if mode == "" {
			mode = ModeSelect
			if fs.get(i, "effect") == "" && fs.get(i, "name") != "" {
				mode = ModeCreate
			}
		}

		var (
			cleaned CleanedEffect
			ok      bool
		)
		switch mode {
		case ModeSelect:
			var err error
			cleaned, ok, err = fs.cleanSelect(ctx, catalog, i)
			if err != nil {
				return err
			}
		case ModeCreate:
			cleaned, ok = fs.cleanCreate(i)
		default:
			fs.addRowError(i, "mode", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", mode))
		}
		if !ok {
			continue
		}

		key := strings.ToLower(cleaned.Effect.Name)
		if (!cleaned.New && seenIDs[cleaned.Effect.ID]) || seenNames[key] {
			duplicate = true
			continue
		}
		if !cleaned.New {
			seenIDs[cleaned.Effect.ID] = true
		}
		seenNames[key] = true

		fs.cleaned = append(fs.cleaned, cleaned)
	}

	if duplicate {
		fs.addNonFormError("Please correct the duplicate data for effect, which must be unique.")
	}
	fs.checkBounds(len(fs.cleaned))
	return nil
}

func (fs *EffectFormSet) cleanSelect(ctx context.Context, catalog Catalog, i int) (CleanedEffect, bool, error) {
	ref := fs.get(i, "effect")
	if ref == "" {
		fs.addRowError(i, "effect", requiredMessage)
		return CleanedEffect{}, false, nil
	}

	effect, err := catalog.FindEffect(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrEffectNotFound) {
			fs.addRowError(i, "effect", invalidChoiceMessage)
			return CleanedEffect{}, false, nil
		}
		return CleanedEffect{}, false, fmt.Errorf("find effect %q: %w", ref, err)
	}
	return CleanedEffect{Effect: effect}, true, nil
}

func (fs *EffectFormSet) cleanCreate(i int) (CleanedEffect, bool) {
	fields := newEffectFields{
		Name:        fs.get(i, "name"),
		Description: fs.get(i, "description"),
	}

	ok := true
	if err := validation.Struct(fields); err != nil {
		ok = false
		if fe, isFields := validation.AsFieldErrors(err); isFields {
			for field, msgs := range fe {
				for _, msg := range msgs {
					fs.addRowError(i, field, msg)
				}
			}
		} else {
			fs.addRowError(i, "name", err.Error())
		}
	}

	effect := &domain.Effect{Name: fields.Name, Description: fields.Description}
	for _, s := range domain.AllSpheres {
		rating, parsed := parseRating(fs.get(i, string(s)))
		if !parsed {
			fs.addRowError(i, string(s), wholeNumberMessage)
			ok = false
			continue
		}
		if msgs := validation.Var(rating, "min=0,max=5"); len(msgs) > 0 {
			for _, msg := range msgs {
				fs.addRowError(i, string(s), msg)
			}
			ok = false
			continue
		}
		_ = effect.SetSphere(s, rating)
	}
	effect.SetSources(splitSources(fs.get(i, "sources")))

	return CleanedEffect{Effect: effect, New: true}, ok
}

func splitSources(raw string) []string {
	var sources []string
	for _, part := range strings.Split(raw, SourceSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			sources = append(sources, part)
		}
	}
	return sources
}

// Len returns the number of cleaned powers
func (fs *EffectFormSet) Len() int {
	return len(fs.cleaned)
}

// Cleaned returns the cleaned powers in submission order
func (fs *EffectFormSet) Cleaned() []CleanedEffect {
	out := make([]CleanedEffect, len(fs.cleaned))
	copy(out, fs.cleaned)
	return out
}

func (fs *EffectFormSet) newEffects() []*domain.Effect {
	var out []*domain.Effect
	for _, c := range fs.cleaned {
		if c.New {
			out = append(out, c.Effect)
		}
	}
	return out
}
