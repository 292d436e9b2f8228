package domain

import "errors"

// Catalog validation errors
var (
	ErrInvalidSphere      = errors.New("invalid sphere")
	ErrInvalidRating      = errors.New("rating must be between 0 and 5")
	ErrEffectNameRequired = errors.New("effect name is required")
	ErrInvalidWonderKind  = errors.New("invalid wonder type")
)

// Lookup errors
var (
	ErrEffectNotFound    = errors.New("effect not found")
	ErrResonanceNotFound = errors.New("resonance not found")
	ErrWonderNotFound    = errors.New("wonder not found")
)
