package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	petmodel "petmarket-backend/internal/domains/pet/model"
)

// Favorite - a user bookmarking a pet listing. At most one row exists
// per (user, pet) pair.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	PetID     uuid.UUID `json:"pet_id" db:"pet_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FavoriteWithPet - a favorite joined with its pet listing, for list views
type FavoriteWithPet struct {
	Favorite
	Pet petmodel.Pet `json:"pet"`
}

// AddResult - outcome of the get-or-create. WasCreated distinguishes a
// fresh favorite (201) from a repeat request (200).
type AddResult struct {
	Favorite   *Favorite
	WasCreated bool
}

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
)

const (
	ErrCodeFavoriteNotFound = "FAV_001"
	ErrCodeInvalidRequest   = "FAV_002"
)
