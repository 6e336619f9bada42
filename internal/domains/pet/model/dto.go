package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreatePetRequest - payload for POST /pets. The owner is never part of
// the payload: it is forced to the requesting principal server-side.
type CreatePetRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Breed       string   `json:"breed"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Price       *float64 `json:"price"`
	Vaccinated  bool     `json:"vaccinated"`
	IsUrgent    bool     `json:"is_urgent"`
	City        string   `json:"city"`
	Image       *string  `json:"image"`
}

func (r CreatePetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.In(petTypeValues()...).Error("type must be one of: dog, cat, bird, rabbit, fish, other"),
		),
		validation.Field(&r.Breed, validation.Length(0, 100)),
		validation.Field(&r.Age,
			validation.Required.Error("age is required"),
			validation.Min(1).Error("age must be a positive number of months"),
		),
		validation.Field(&r.Gender,
			validation.Required.Error("gender is required"),
			validation.In(petGenderValues()...).Error("gender must be male or female"),
		),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.Status,
			validation.In(petStatusValues()...).Error("status must be one of: adopting, selling, breeding"),
		),
		validation.Field(&r.Price,
			validation.Min(0.0).Error("price must not be negative"),
		),
		validation.Field(&r.City,
			validation.Required.Error("city is required"),
			validation.Length(1, 100),
		),
	)
}

// ToEntity builds the Pet record. ownerID comes from the verified
// principal, never from the payload.
func (r CreatePetRequest) ToEntity(ownerID uuid.UUID) *Pet {
	status := PetStatus(r.Status)
	if r.Status == "" {
		status = PetStatusAdopting
	}

	price := decimal.Zero
	if r.Price != nil {
		price = decimal.NewFromFloat(*r.Price)
	}

	now := time.Now()
	return &Pet{
		ID:          uuid.New(),
		Name:        r.Name,
		Type:        PetType(r.Type),
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      PetGender(r.Gender),
		Description: r.Description,
		Status:      status,
		Price:       price,
		Vaccinated:  r.Vaccinated,
		IsUrgent:    r.IsUrgent,
		City:        r.City,
		Image:       r.Image,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdatePetRequest - payload for PUT/PATCH /pets/:id. PUT requires every
// mutable field; PATCH accepts any subset. There is no owner field: the
// owner is immutable and cannot be touched through updates.
type UpdatePetRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type"`
	Breed       *string  `json:"breed"`
	Age         *int     `json:"age"`
	Gender      *string  `json:"gender"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Price       *float64 `json:"price"`
	Vaccinated  *bool    `json:"vaccinated"`
	IsUrgent    *bool    `json:"is_urgent"`
	City        *string  `json:"city"`
	Image       *string  `json:"image"`
}

// Validate checks field constraints; when partial is false every mutable
// field must be present (full replacement semantics of PUT).
func (r UpdatePetRequest) Validate(partial bool) error {
	rules := []*validation.FieldRules{
		validation.Field(&r.Name, validation.Length(1, 100)),
		validation.Field(&r.Type,
			validation.In(petTypeValues()...).Error("type must be one of: dog, cat, bird, rabbit, fish, other"),
		),
		validation.Field(&r.Breed, validation.Length(0, 100)),
		validation.Field(&r.Age, validation.Min(1).Error("age must be a positive number of months")),
		validation.Field(&r.Gender,
			validation.In(petGenderValues()...).Error("gender must be male or female"),
		),
		validation.Field(&r.Status,
			validation.In(petStatusValues()...).Error("status must be one of: adopting, selling, breeding"),
		),
		validation.Field(&r.Price, validation.Min(0.0).Error("price must not be negative")),
		validation.Field(&r.City, validation.Length(1, 100)),
	}

	if !partial {
		rules = append(rules,
			validation.Field(&r.Name, validation.NotNil.Error("name is required")),
			validation.Field(&r.Type, validation.NotNil.Error("type is required")),
			validation.Field(&r.Age, validation.NotNil.Error("age is required")),
			validation.Field(&r.Gender, validation.NotNil.Error("gender is required")),
			validation.Field(&r.Description, validation.NotNil.Error("description is required")),
			validation.Field(&r.Status, validation.NotNil.Error("status is required")),
			validation.Field(&r.Vaccinated, validation.NotNil.Error("vaccinated is required")),
			validation.Field(&r.IsUrgent, validation.NotNil.Error("is_urgent is required")),
			validation.Field(&r.City, validation.NotNil.Error("city is required")),
		)
	}

	return validation.ValidateStruct(&r, rules...)
}

// ApplyTo merges the provided fields into the entity. OwnerID, ID and
// CreatedAt are never written.
func (r UpdatePetRequest) ApplyTo(pet *Pet) {
	if r.Name != nil {
		pet.Name = *r.Name
	}
	if r.Type != nil {
		pet.Type = PetType(*r.Type)
	}
	if r.Breed != nil {
		pet.Breed = *r.Breed
	}
	if r.Age != nil {
		pet.Age = *r.Age
	}
	if r.Gender != nil {
		pet.Gender = PetGender(*r.Gender)
	}
	if r.Description != nil {
		pet.Description = *r.Description
	}
	if r.Status != nil {
		pet.Status = PetStatus(*r.Status)
	}
	if r.Price != nil {
		pet.Price = decimal.NewFromFloat(*r.Price)
	}
	if r.Vaccinated != nil {
		pet.Vaccinated = *r.Vaccinated
	}
	if r.IsUrgent != nil {
		pet.IsUrgent = *r.IsUrgent
	}
	if r.City != nil {
		pet.City = *r.City
	}
	if r.Image != nil {
		pet.Image = r.Image
	}
	pet.UpdatedAt = time.Now()
}

// ChangeStatusRequest - payload for POST /pets/:id/status
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

func (r ChangeStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.In(petStatusValues()...).Error("status must be one of: adopting, selling, breeding"),
		),
	)
}

// ========================================
// LIST / FILTER DTOs
// ========================================

// ListPetsRequest - query parameters of GET /pets. Every filter is
// optional; set filters are AND-combined.
type ListPetsRequest struct {
	Type          string   `form:"type"`
	Breed         string   `form:"breed"`
	BreedContains string   `form:"breed_contains"`
	Gender        string   `form:"gender"`
	Status        string   `form:"status"`
	Vaccinated    *bool    `form:"vaccinated"`
	City          string   `form:"city"`
	CityContains  string   `form:"city_contains"`
	MinPrice      *float64 `form:"min_price"`
	MaxPrice      *float64 `form:"max_price"`
	MinAge        *int     `form:"min_age"`
	MaxAge        *int     `form:"max_age"`
	Search        string   `form:"search"`
	Sort          string   `form:"sort"`  // created_at, price, age, name
	Order         string   `form:"order"` // asc, desc
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}

func (r *ListPetsRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.Sort == "" {
		r.Sort = "created_at"
	}
	if r.Order == "" {
		if r.Sort == "created_at" {
			r.Order = "desc"
		} else {
			r.Order = "asc"
		}
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.In(petTypeValues()...).Error("invalid type filter")),
		validation.Field(&r.Gender, validation.In(petGenderValues()...).Error("invalid gender filter")),
		validation.Field(&r.Status, validation.In(petStatusValues()...).Error("invalid status filter")),
		validation.Field(&r.Sort,
			validation.In("created_at", "price", "age", "name").Error("sort must be one of: created_at, price, age, name"),
		),
		validation.Field(&r.Order,
			validation.In("asc", "desc").Error("order must be asc or desc"),
		),
	)
}

// ToFilter converts the request into the repository filter.
func (r *ListPetsRequest) ToFilter() *PetFilter {
	return &PetFilter{
		Type:          r.Type,
		Breed:         r.Breed,
		BreedContains: r.BreedContains,
		Gender:        r.Gender,
		Status:        r.Status,
		Vaccinated:    r.Vaccinated,
		City:          r.City,
		CityContains:  r.CityContains,
		MinPrice:      r.MinPrice,
		MaxPrice:      r.MaxPrice,
		MinAge:        r.MinAge,
		MaxAge:        r.MaxAge,
		Search:        r.Search,
		Sort:          r.Sort,
		Order:         r.Order,
		Limit:         r.Limit,
		Offset:        (r.Page - 1) * r.Limit,
	}
}

// PetFilter - repository-facing filter set. Range bounds are inclusive;
// an inverted range (min > max) selects nothing and is not an error.
type PetFilter struct {
	Type          string
	Breed         string
	BreedContains string
	Gender        string
	Status        string
	Vaccinated    *bool
	City          string
	CityContains  string
	MinPrice      *float64
	MaxPrice      *float64
	MinAge        *int
	MaxAge        *int
	Search        string
	Sort          string
	Order         string
	Limit         int
	Offset        int
}

// ========================================
// RESPONSE DTOs
// ========================================

// PetStats - aggregate counts over the filtered set, before pagination.
// Status is exhaustive and mutually exclusive, so
// Adopting + Selling + Breeding == Total always holds.
type PetStats struct {
	Total    int `json:"total"`
	Adopting int `json:"adopting"`
	Selling  int `json:"selling"`
	Breeding int `json:"breeding"`
	Urgent   int `json:"urgent"`
}

// PaginationMeta - pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListPetsResponse - response of GET /pets
type ListPetsResponse struct {
	Stats      PetStats       `json:"stats"`
	Pets       []Pet          `json:"pets"`
	Pagination PaginationMeta `json:"pagination"`
}

// PriceRangeResponse - response of GET /pets/price-range. Bounds are
// null when there is no listing with a price.
type PriceRangeResponse struct {
	MinPrice *decimal.Decimal `json:"min_price"`
	MaxPrice *decimal.Decimal `json:"max_price"`
}

// enum helpers for ozzo's In rule
func petTypeValues() []interface{} {
	return []interface{}{
		PetTypeDog.String(), PetTypeCat.String(), PetTypeBird.String(),
		PetTypeRabbit.String(), PetTypeFish.String(), PetTypeOther.String(),
	}
}

func petGenderValues() []interface{} {
	return []interface{}{PetGenderMale.String(), PetGenderFemale.String()}
}

func petStatusValues() []interface{} {
	return []interface{}{
		PetStatusAdopting.String(), PetStatusSelling.String(), PetStatusBreeding.String(),
	}
}
