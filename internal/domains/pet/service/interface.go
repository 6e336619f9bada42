package service

import (
	"context"

	"github.com/google/uuid"

	"petmarket-backend/internal/domains/pet/model"
)

// PetService - business logic contract for pet listings
type PetService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req model.CreatePetRequest) (*model.Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Pet, error)
	Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePetRequest) (*model.Pet, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ChangeStatus(ctx context.Context, id, userID uuid.UUID, status string) (*model.Pet, error)
	List(ctx context.Context, req *model.ListPetsRequest) (*model.ListPetsResponse, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Pet, *model.PaginationMeta, error)
	PriceRange(ctx context.Context) (*model.PriceRangeResponse, error)
}
