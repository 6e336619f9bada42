package service

import (
	"context"

	"github.com/google/uuid"

	"petmarket-backend/internal/domains/favorite/model"
	"petmarket-backend/internal/domains/favorite/repository"
	petrepo "petmarket-backend/internal/domains/pet/repository"
	"petmarket-backend/pkg/logger"
)

// FavoriteService - business logic contract for favorites
type FavoriteService interface {
	Add(ctx context.Context, userID, petID uuid.UUID) (*model.AddResult, error)
	Remove(ctx context.Context, userID, petID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithPet, error)
}

type favoriteService struct {
	repo    repository.FavoriteRepository
	petRepo petrepo.PetRepository
}

// NewFavoriteService - Constructor
func NewFavoriteService(repo repository.FavoriteRepository, petRepo petrepo.PetRepository) FavoriteService {
	return &favoriteService{repo: repo, petRepo: petRepo}
}

// Add favorites the pet for the user. Repeating the request is a no-op
// that reports the favorite already existed.
func (s *favoriteService) Add(ctx context.Context, userID, petID uuid.UUID) (*model.AddResult, error) {
	// The pet must exist; a dangling favorite is never created
	if _, err := s.petRepo.GetByID(ctx, petID); err != nil {
		return nil, err
	}

	fav, created, err := s.repo.Add(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	if created {
		logger.Info("Pet added to favorites", map[string]interface{}{
			"user_id": userID.String(),
			"pet_id":  petID.String(),
		})
	}

	return &model.AddResult{Favorite: fav, WasCreated: created}, nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, petID)
}

func (s *favoriteService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithPet, error) {
	return s.repo.ListByUser(ctx, userID)
}
