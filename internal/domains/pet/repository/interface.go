package repository

import (
	"context"

	"github.com/google/uuid"

	"petmarket-backend/internal/domains/pet/model"
)

// PetRepository - data access contract for pet listings
type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pet, error)
	Update(ctx context.Context, pet *model.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter *model.PetFilter) ([]model.Pet, int, error)
	Stats(ctx context.Context, filter *model.PetFilter) (*model.PetStats, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Pet, int, error)
	PriceRange(ctx context.Context) (*model.PriceRangeResponse, error)
}
