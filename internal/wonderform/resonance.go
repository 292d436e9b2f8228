package wonderform

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/validation"
	"github.com/google/uuid"
)

const ResonancePrefix = "resonance"

// ResonanceFormSet collects (resonance, rating) rows. Rows reference a
// resonance by id or name and default to a rating of zero.
type ResonanceFormSet struct {
	formset
	cleaned []domain.WonderResonanceRating
}

func newResonanceFormSet(values url.Values) *ResonanceFormSet {
	return &ResonanceFormSet{formset: newFormset(ResonancePrefix, values)}
}

// clean validates every submitted row. The returned error is reserved for
// catalog lookups that failed for reasons other than a missing record.
func (fs *ResonanceFormSet) clean(ctx context.Context, catalog Catalog) error {
	if !fs.readManagement() {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	duplicate := false

	for i := 0; i < fs.mgmt.total; i++ {
		ref := fs.get(i, "resonance")
		rawRating := fs.get(i, "rating")

		if fs.deleted(i) {
			continue
		}
		if i >= fs.mgmt.initial && !changed(ref, rawRating) {
			continue
		}

		rating, ok := parseRating(rawRating)
		if !ok {
			fs.addRowError(i, "rating", wholeNumberMessage)
		} else {
			for _, msg := range validation.Var(rating, "min=0,max=5") {
				fs.addRowError(i, "rating", msg)
			}
		}

		if ref == "" {
			fs.addRowError(i, "resonance", requiredMessage)
			continue
		}

		res, err := catalog.FindResonance(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrResonanceNotFound) {
				fs.addRowError(i, "resonance", invalidChoiceMessage)
				continue
			}
			return fmt.Errorf("find resonance %q: %w", ref, err)
		}

		if seen[res.ID] {
			duplicate = true
			continue
		}
		seen[res.ID] = true

		fs.cleaned = append(fs.cleaned, domain.WonderResonanceRating{
			ResonanceID: res.ID,
			Resonance:   res,
			Rating:      rating,
		})
	}

	if duplicate {
		fs.addNonFormError("Please correct the duplicate data for resonance, which must be unique.")
	}
	fs.checkBounds(len(fs.cleaned))
	return nil
}

// Total sums the cleaned ratings
func (fs *ResonanceFormSet) Total() int {
	return domain.ResonanceTotal(fs.cleaned)
}

// Ratings returns copies of the cleaned rows
func (fs *ResonanceFormSet) Ratings() []domain.WonderResonanceRating {
	out := make([]domain.WonderResonanceRating, len(fs.cleaned))
	copy(out, fs.cleaned)
	return out
}
