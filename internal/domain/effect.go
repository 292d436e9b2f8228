package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Effect is a catalog entry for a magickal capability (a rote), rated
// across the nine spheres. Names are unique.
type Effect struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string         `json:"name" gorm:"not null"`
	Description    string         `json:"description"`
	Correspondence int            `json:"correspondence" gorm:"not null;default:0"`
	Entropy        int            `json:"entropy" gorm:"not null;default:0"`
	Forces         int            `json:"forces" gorm:"not null;default:0"`
	Life           int            `json:"life" gorm:"not null;default:0"`
	Matter         int            `json:"matter" gorm:"not null;default:0"`
	Mind           int            `json:"mind" gorm:"not null;default:0"`
	Prime          int            `json:"prime" gorm:"not null;default:0"`
	Spirit         int            `json:"spirit" gorm:"not null;default:0"`
	Time           int            `json:"time" gorm:"not null;default:0"`
	Sources        datatypes.JSON `json:"sources" gorm:"type:jsonb"` // ["Book of Secrets p. 42"]
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Effect) TableName() string {
	return "effects"
}

// Validate checks the name and that every sphere sits on the dot scale
func (e *Effect) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEffectNameRequired
	}
	for _, sr := range e.Spheres() {
		if !ValidRating(sr.Rating) {
			return ErrInvalidRating
		}
	}
	return nil
}

// Sphere returns the rating for a single sphere
func (e *Effect) Sphere(s Sphere) (int, error) {
	switch s {
	case SphereCorrespondence:
		return e.Correspondence, nil
	case SphereEntropy:
		return e.Entropy, nil
	case SphereForces:
		return e.Forces, nil
	case SphereLife:
		return e.Life, nil
	case SphereMatter:
		return e.Matter, nil
	case SphereMind:
		return e.Mind, nil
	case SpherePrime:
		return e.Prime, nil
	case SphereSpirit:
		return e.Spirit, nil
	case SphereTime:
		return e.Time, nil
	}
	return 0, ErrInvalidSphere
}

// SetSphere assigns a rating to a sphere
func (e *Effect) SetSphere(s Sphere, rating int) error {
	if !ValidRating(rating) {
		return ErrInvalidRating
	}
	switch s {
	case SphereCorrespondence:
		e.Correspondence = rating
	case SphereEntropy:
		e.Entropy = rating
	case SphereForces:
		e.Forces = rating
	case SphereLife:
		e.Life = rating
	case SphereMatter:
		e.Matter = rating
	case SphereMind:
		e.Mind = rating
	case SpherePrime:
		e.Prime = rating
	case SphereSpirit:
		e.Spirit = rating
	case SphereTime:
		e.Time = rating
	default:
		return ErrInvalidSphere
	}
	return nil
}

// Spheres returns all nine ratings in AllSpheres order
func (e *Effect) Spheres() []SphereRating {
	ratings := make([]SphereRating, len(AllSpheres))
	for i, s := range AllSpheres {
		r, _ := e.Sphere(s)
		ratings[i] = SphereRating{Sphere: s, Rating: r}
	}
	return ratings
}

// MaxSphere returns the highest rated sphere. Ties go to the earlier
// sphere in AllSpheres order.
func (e *Effect) MaxSphere() SphereRating {
	best := SphereRating{Sphere: AllSpheres[0]}
	for _, sr := range e.Spheres() {
		if sr.Rating > best.Rating {
			best = sr
		}
	}
	return best
}

// SourceList decodes the stored citations
func (e *Effect) SourceList() []string {
	if len(e.Sources) == 0 {
		return []string{}
	}
	var sources []string
	if err := json.Unmarshal(e.Sources, &sources); err != nil {
		return []string{}
	}
	return sources
}

// SetSources replaces the stored citations
func (e *Effect) SetSources(sources []string) {
	if sources == nil {
		sources = []string{}
	}
	raw, _ := json.Marshal(sources)
	e.Sources = datatypes.JSON(raw)
}
