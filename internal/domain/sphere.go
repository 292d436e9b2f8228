package domain

// Sphere is one of the nine spheres of magick an Effect is rated against
type Sphere string

const (
	SphereLife           Sphere = "life"
	SphereMatter         Sphere = "matter"
	SphereForces         Sphere = "forces"
	SphereMind           Sphere = "mind"
	SphereSpirit         Sphere = "spirit"
	SpherePrime          Sphere = "prime"
	SphereEntropy        Sphere = "entropy"
	SphereTime           Sphere = "time"
	SphereCorrespondence Sphere = "correspondence"
)

// AllSpheres is the canonical display order
var AllSpheres = []Sphere{
	SphereCorrespondence,
	SphereEntropy,
	SphereForces,
	SphereLife,
	SphereMatter,
	SphereMind,
	SpherePrime,
	SphereSpirit,
	SphereTime,
}

const (
	MinRating = 0
	MaxRating = 5
)

func (s Sphere) IsValid() bool {
	for _, sphere := range AllSpheres {
		if s == sphere {
			return true
		}
	}
	return false
}

func (s Sphere) String() string {
	return string(s)
}

// SphereRating pairs a sphere with its dot rating
type SphereRating struct {
	Sphere Sphere `json:"sphere"`
	Rating int    `json:"rating"`
}

// ValidRating reports whether r fits the 0-5 dot scale
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
