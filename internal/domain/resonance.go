package domain

import (
	"time"

	"github.com/google/uuid"
)

// Resonance is a thematic tag (e.g. "Fiery", "Serene") a Wonder can be
// aligned with
type Resonance struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Resonance) TableName() string {
	return "resonances"
}

// WonderResonanceRating records how strongly a Wonder carries a Resonance
type WonderResonanceRating struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WonderID    uuid.UUID  `json:"wonderId" gorm:"type:uuid;not null;uniqueIndex:idx_wonder_resonance"`
	ResonanceID uuid.UUID  `json:"resonanceId" gorm:"type:uuid;not null;uniqueIndex:idx_wonder_resonance"`
	Rating      int        `json:"rating" gorm:"not null;default:0"`
	Resonance   *Resonance `json:"resonance,omitempty" gorm:"foreignKey:ResonanceID"`
}

func (WonderResonanceRating) TableName() string {
	return "wonder_resonance_ratings"
}

// ResonanceTotal sums the ratings
func ResonanceTotal(ratings []WonderResonanceRating) int {
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	return total
}
