package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PetType represents valid pet types
type PetType string

const (
	PetTypeDog    PetType = "dog"
	PetTypeCat    PetType = "cat"
	PetTypeBird   PetType = "bird"
	PetTypeRabbit PetType = "rabbit"
	PetTypeFish   PetType = "fish"
	PetTypeOther  PetType = "other"
)

func (t PetType) IsValid() bool {
	switch t {
	case PetTypeDog, PetTypeCat, PetTypeBird, PetTypeRabbit, PetTypeFish, PetTypeOther:
		return true
	}
	return false
}

func (t PetType) String() string {
	return string(t)
}

// PetGender represents valid pet genders
type PetGender string

const (
	PetGenderMale   PetGender = "male"
	PetGenderFemale PetGender = "female"
)

func (g PetGender) IsValid() bool {
	switch g {
	case PetGenderMale, PetGenderFemale:
		return true
	}
	return false
}

func (g PetGender) String() string {
	return string(g)
}

// PetStatus represents why the pet is listed
type PetStatus string

const (
	PetStatusAdopting PetStatus = "adopting"
	PetStatusSelling  PetStatus = "selling"
	PetStatusBreeding PetStatus = "breeding"
)

func (s PetStatus) IsValid() bool {
	switch s {
	case PetStatusAdopting, PetStatusSelling, PetStatusBreeding:
		return true
	}
	return false
}

func (s PetStatus) String() string {
	return string(s)
}

// Pet represents a marketplace listing. The JSON field list is the
// serialization contract; nothing outside it is ever exposed.
type Pet struct {
	// Identity
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	// Classification
	Type   PetType   `json:"type" db:"type"`
	Breed  string    `json:"breed" db:"breed"` // optional, "" when unknown
	Age    int       `json:"age" db:"age"`     // months
	Gender PetGender `json:"gender" db:"gender"`

	// Listing details
	Description string          `json:"description" db:"description"`
	Status      PetStatus       `json:"status" db:"status"`
	Price       decimal.Decimal `json:"price" db:"price"`

	// Health & urgency
	Vaccinated bool `json:"vaccinated" db:"vaccinated"`
	IsUrgent   bool `json:"is_urgent" db:"is_urgent"`

	// Location
	City string `json:"city" db:"city"`

	// Media: opaque reference, resolved by the media service
	Image *string `json:"image" db:"image"`

	// Ownership & timestamps. OwnerID is immutable after creation.
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsOwnedBy reports whether the principal may mutate this listing.
func (p *Pet) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
