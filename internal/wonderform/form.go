// Package wonderform validates a submitted Wonder together with its nested
// resonance and effect formsets and saves it as the concrete kind selected
// by wonder_type.
package wonderform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/validation"
	"github.com/google/uuid"
)

// Catalog resolves the references a submission makes. Missing records are
// reported with domain.ErrEffectNotFound and domain.ErrResonanceNotFound.
type Catalog interface {
	FindEffect(ctx context.Context, ref string) (*domain.Effect, error)
	FindResonance(ctx context.Context, ref string) (*domain.Resonance, error)
}

// Store persists a wonder with its rating rows and powers. newEffects are
// find-or-created by name first and updated in place with the stored row.
type Store interface {
	Save(ctx context.Context, w *domain.Wonder, newEffects []*domain.Effect) error
}

type Option func(*Form)

// WithStore sets where Save(ctx, true) writes
func WithStore(s Store) Option {
	return func(f *Form) { f.store = s }
}

// WithInstance binds an existing wonder so Save updates it
func WithInstance(item domain.WonderItem) Option {
	return func(f *Form) { f.instance = item }
}

// WithCreatedBy records the submitting user on new wonders
func WithCreatedBy(userID uuid.UUID) Option {
	return func(f *Form) { f.createdBy = &userID }
}

type wonderFields struct {
	WonderType  string `form:"wonder_type" validate:"required"`
	Name        string `form:"name" validate:"required,max=100"`
	Description string `form:"description" validate:"max=4000"`
}

type cleanedWonder struct {
	kind        domain.WonderKind
	name        string
	description string
	rank        int
	arete       *int
}

type Form struct {
	Resonance *ResonanceFormSet
	Effects   *EffectFormSet

	values    url.Values
	catalog   Catalog
	store     Store
	instance  domain.WonderItem
	createdBy *uuid.UUID

	validated bool
	errors    Errors
	err       error
	cleaned   cleanedWonder
}

// New binds submitted form values
func New(values url.Values, catalog Catalog, opts ...Option) *Form {
	if values == nil {
		values = url.Values{}
	}
	f := &Form{
		Resonance: newResonanceFormSet(values),
		Effects:   newEffectFormSet(values),
		values:    values,
		catalog:   catalog,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromInput binds a programmatic submission through the same path as a
// form POST
func NewFromInput(in Input, catalog Catalog, opts ...Option) *Form {
	return New(in.Values(), catalog, opts...)
}

// IsValid cleans the form once and reports whether it may be saved. A
// catalog failure also makes the form invalid; see Err.
func (f *Form) IsValid(ctx context.Context) bool {
	if !f.validated {
		f.fullClean(ctx)
		f.validated = true
	}
	return f.err == nil && f.errors.Empty()
}

// Errors returns the validation errors. Nested formset errors appear as
// non-field errors prefixed with "resonance:" or "effect:".
func (f *Form) Errors() Errors {
	return f.errors
}

// Err returns a catalog failure hit during validation
func (f *Form) Err() error {
	return f.err
}

func (f *Form) get(field string) string {
	return strings.TrimSpace(f.values.Get(field))
}

func (f *Form) fullClean(ctx context.Context) {
	fields := wonderFields{
		WonderType:  f.get("wonder_type"),
		Name:        f.get("name"),
		Description: f.get("description"),
	}
	if err := validation.Struct(fields); err != nil {
		if fe, ok := validation.AsFieldErrors(err); ok {
			for field, msgs := range fe {
				for _, msg := range msgs {
					f.errors.AddField(field, msg)
				}
			}
		} else {
			f.err = err
			return
		}
	}
	f.cleaned.name = fields.Name
	f.cleaned.description = fields.Description

	kindOK := false
	if fields.WonderType != "" {
		kind, err := domain.ParseWonderKind(fields.WonderType)
		if err != nil {
			f.errors.AddField("wonder_type", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", fields.WonderType))
		} else {
			f.cleaned.kind = kind
			kindOK = true
		}
	}

	rankOK := f.cleanRank()
	areteOK := f.cleanArete()

	if err := f.Resonance.clean(ctx, f.catalog); err != nil {
		f.err = fmt.Errorf("validate resonance: %w", err)
		return
	}
	for _, msg := range f.Resonance.Errors() {
		f.errors.AddNonField(ResonancePrefix + ": " + msg)
	}

	if err := f.Effects.clean(ctx, f.catalog); err != nil {
		f.err = fmt.Errorf("validate effects: %w", err)
		return
	}
	for _, msg := range f.Effects.Errors() {
		f.errors.AddNonField(EffectPrefix + ": " + msg)
	}

	f.clean(kindOK, rankOK, areteOK)
}

func (f *Form) cleanRank() bool {
	raw := f.get("rank")
	if raw == "" {
		f.errors.AddField("rank", requiredMessage)
		return false
	}
	rank, err := strconv.Atoi(raw)
	if err != nil {
		f.errors.AddField("rank", wholeNumberMessage)
		return false
	}
	if msgs := validation.Var(rank, fmt.Sprintf("min=%d,max=%d", domain.MinRank, domain.MaxRank)); len(msgs) > 0 {
		for _, msg := range msgs {
			f.errors.AddField("rank", msg)
		}
		return false
	}
	f.cleaned.rank = rank
	return true
}

// cleanArete treats a blank value as "not applicable". Whether that is
// acceptable depends on the kind and is decided in clean.
func (f *Form) cleanArete() bool {
	raw := f.get("arete")
	if raw == "" {
		return true
	}
	arete, err := strconv.Atoi(raw)
	if err != nil {
		f.errors.AddField("arete", wholeNumberMessage)
		return false
	}
	if msgs := validation.Var(arete, fmt.Sprintf("min=%d,max=%d", domain.MinArete, domain.MaxArete)); len(msgs) > 0 {
		for _, msg := range msgs {
			f.errors.AddField("arete", msg)
		}
		return false
	}
	f.cleaned.arete = &arete
	return true
}

// clean applies the rules that span fields and formsets
func (f *Form) clean(kindOK, rankOK, areteOK bool) {
	kind := f.cleaned.kind

	if kindOK && areteOK && kind.RequiresArete() && f.cleaned.arete == nil {
		f.errors.AddField("arete", AreteRequiredMessage)
	}

	if rankOK && f.Resonance.Valid() && f.Resonance.Total() < f.cleaned.rank {
		f.errors.AddNonField(ResonanceTotalMessage)
	}

	if f.Effects.Valid() {
		switch {
		case f.Effects.Len() == 0:
			f.errors.AddNonField(EffectPrefix + ": At least one effect is required.")
		case kindOK && kind.SinglePower() && f.Effects.Len() > 1:
			f.errors.AddNonField(EffectPrefix + ": Charms and Artifacts grant a single effect.")
		}
	}
}

// Save builds the concrete wonder. It refuses to run until IsValid has
// succeeded. With commit false nothing is written and a new wonder keeps a
// nil ID.
func (f *Form) Save(ctx context.Context, commit bool) (domain.WonderItem, error) {
	if !f.validated {
		return nil, ErrNotValidated
	}
	if f.err != nil || !f.errors.Empty() {
		return nil, ErrInvalid
	}

	w := f.buildWonder()
	item, err := domain.NewWonderItem(f.cleaned.kind, w)
	if err != nil {
		return nil, err
	}
	if !commit {
		return item, nil
	}

	if f.store == nil {
		return nil, ErrNoStore
	}
	if err := f.store.Save(ctx, w, f.Effects.newEffects()); err != nil {
		return nil, fmt.Errorf("save %s %q: %w", f.cleaned.kind, w.Name, err)
	}
	return item, nil
}

func (f *Form) buildWonder() *domain.Wonder {
	w := &domain.Wonder{}
	if f.instance != nil {
		base := f.instance.Base()
		w.ID = base.ID
		w.CreatedByID = base.CreatedByID
		w.CreatedAt = base.CreatedAt
	}
	if w.CreatedByID == nil && f.createdBy != nil {
		id := *f.createdBy
		w.CreatedByID = &id
	}

	c := f.cleaned
	w.Name = c.name
	w.Description = c.description
	w.Rank = c.rank
	if c.kind.RequiresArete() && c.arete != nil {
		arete := *c.arete
		w.Arete = &arete
	}

	w.ResonanceRatings = f.Resonance.Ratings()
	for i := range w.ResonanceRatings {
		w.ResonanceRatings[i].WonderID = w.ID
	}

	effects := make([]*domain.Effect, 0, f.Effects.Len())
	for _, ce := range f.Effects.cleaned {
		effects = append(effects, ce.Effect)
	}
	if c.kind.SinglePower() {
		if len(effects) > 0 {
			w.Power = effects[0]
			if w.Power.ID != uuid.Nil {
				id := w.Power.ID
				w.PowerID = &id
			}
		}
	} else {
		w.Powers = effects
	}
	return w
}
