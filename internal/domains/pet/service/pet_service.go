package service

import (
	"context"

	"github.com/google/uuid"

	"petmarket-backend/internal/domains/pet/model"
	"petmarket-backend/internal/domains/pet/repository"
	"petmarket-backend/pkg/logger"
)

type petService struct {
	repo repository.PetRepository
}

// NewPetService - Constructor
func NewPetService(repo repository.PetRepository) PetService {
	return &petService{repo: repo}
}

// ========================================
// CREATE
// ========================================

func (s *petService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreatePetRequest) (*model.Pet, error) {
	pet := req.ToEntity(ownerID)

	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, err
	}

	logger.Info("Pet listing created", map[string]interface{}{
		"pet_id":   pet.ID.String(),
		"owner_id": ownerID.String(),
		"status":   pet.Status.String(),
	})

	return pet, nil
}

// ========================================
// READ
// ========================================

func (s *petService) GetByID(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	return s.repo.GetByID(ctx, id)
}

// ========================================
// UPDATE / DELETE (owner only)
// ========================================

func (s *petService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdatePetRequest) (*model.Pet, error) {
	// Existence first: a missing pet is 404 even for a non-owner
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(userID) {
		return nil, model.ErrNotOwner
	}

	req.ApplyTo(pet)

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

func (s *petService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !pet.IsOwnedBy(userID) {
		return model.ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Pet listing deleted", map[string]interface{}{
		"pet_id":   id.String(),
		"owner_id": userID.String(),
	})

	return nil
}

// ========================================
// CHANGE STATUS
// ========================================

func (s *petService) ChangeStatus(ctx context.Context, id, userID uuid.UUID, status string) (*model.Pet, error) {
	newStatus := model.PetStatus(status)
	if !newStatus.IsValid() {
		return nil, model.ErrInvalidStatus
	}

	pet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(userID) {
		return nil, model.ErrNotOwner
	}

	update := model.UpdatePetRequest{Status: &status}
	update.ApplyTo(pet)

	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

// ========================================
// LIST / SEARCH / STATS
// ========================================

func (s *petService) List(ctx context.Context, req *model.ListPetsRequest) (*model.ListPetsResponse, error) {
	filter := req.ToFilter()

	pets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Stats run over the same filtered set, never the page
	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &model.ListPetsResponse{
		Stats:      *stats,
		Pets:       pets,
		Pagination: buildPagination(req.Page, req.Limit, total),
	}, nil
}

func (s *petService) ListMine(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Pet, *model.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	pets, total, err := s.repo.ListByOwner(ctx, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}

	meta := buildPagination(page, limit, total)
	return pets, &meta, nil
}

func (s *petService) PriceRange(ctx context.Context) (*model.PriceRangeResponse, error) {
	return s.repo.PriceRange(ctx)
}

func buildPagination(page, limit, total int) model.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return model.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}
