package domain

import (
	"time"

	"github.com/google/uuid"
)

type WonderKind string

const (
	WonderKindCharm    WonderKind = "charm"
	WonderKindArtifact WonderKind = "artifact"
	WonderKindTalisman WonderKind = "talisman"
)

var AllWonderKinds = []WonderKind{WonderKindCharm, WonderKindArtifact, WonderKindTalisman}

const (
	MinRank  = 0
	MaxRank  = 10
	MinArete = 0
	MaxArete = 10
)

func ParseWonderKind(s string) (WonderKind, error) {
	k := WonderKind(s)
	if !k.IsValid() {
		return "", ErrInvalidWonderKind
	}
	return k, nil
}

func (k WonderKind) IsValid() bool {
	switch k {
	case WonderKindCharm, WonderKindArtifact, WonderKindTalisman:
		return true
	}
	return false
}

// RequiresArete reports whether the kind casts its power with its own Arete
func (k WonderKind) RequiresArete() bool {
	return k == WonderKindCharm || k == WonderKindTalisman
}

// SinglePower reports whether the kind holds exactly one Effect. Talismans
// hold many.
func (k WonderKind) SinglePower() bool {
	return k == WonderKindCharm || k == WonderKindArtifact
}

// Wonder is the persisted row shared by every kind of magickal item.
// Charms and Artifacts use Power, Talismans use Powers.
type Wonder struct {
	ID               uuid.UUID               `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind             WonderKind              `json:"kind" gorm:"type:varchar(20);not null;index"`
	Name             string                  `json:"name" gorm:"not null;index"`
	Description      string                  `json:"description"`
	Rank             int                     `json:"rank" gorm:"not null;default:0"`
	Arete            *int                    `json:"arete"`
	PowerID          *uuid.UUID              `json:"powerId,omitempty" gorm:"type:uuid"`
	Power            *Effect                 `json:"power,omitempty" gorm:"foreignKey:PowerID"`
	Powers           []*Effect               `json:"powers,omitempty" gorm:"many2many:wonder_powers;"`
	ResonanceRatings []WonderResonanceRating `json:"resonance" gorm:"foreignKey:WonderID;constraint:OnDelete:CASCADE"`
	CreatedByID      *uuid.UUID              `json:"createdById,omitempty" gorm:"type:uuid"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

func (Wonder) TableName() string {
	return "wonders"
}

// Effects returns the granted powers regardless of kind
func (w *Wonder) Effects() []*Effect {
	if w.Kind.SinglePower() {
		if w.Power == nil {
			return nil
		}
		return []*Effect{w.Power}
	}
	return w.Powers
}

// ResonanceTotal sums the wonder's resonance ratings
func (w *Wonder) ResonanceTotal() int {
	return ResonanceTotal(w.ResonanceRatings)
}

// WonderItem is a Wonder viewed as its concrete kind
type WonderItem interface {
	Base() *Wonder
	WonderKind() WonderKind
}

type Charm struct {
	*Wonder
}

func (c *Charm) Base() *Wonder          { return c.Wonder }
func (c *Charm) WonderKind() WonderKind { return WonderKindCharm }

type Artifact struct {
	*Wonder
}

func (a *Artifact) Base() *Wonder          { return a.Wonder }
func (a *Artifact) WonderKind() WonderKind { return WonderKindArtifact }

type Talisman struct {
	*Wonder
}

func (t *Talisman) Base() *Wonder          { return t.Wonder }
func (t *Talisman) WonderKind() WonderKind { return WonderKindTalisman }

// NewWonderItem stamps kind onto w and wraps it in the matching concrete type
func NewWonderItem(kind WonderKind, w *Wonder) (WonderItem, error) {
	switch kind {
	case WonderKindCharm:
		w.Kind = kind
		return &Charm{Wonder: w}, nil
	case WonderKindArtifact:
		w.Kind = kind
		return &Artifact{Wonder: w}, nil
	case WonderKindTalisman:
		w.Kind = kind
		return &Talisman{Wonder: w}, nil
	}
	return nil, ErrInvalidWonderKind
}

// AsWonderItem wraps a loaded row using its stored kind
func AsWonderItem(w *Wonder) (WonderItem, error) {
	return NewWonderItem(w.Kind, w)
}
