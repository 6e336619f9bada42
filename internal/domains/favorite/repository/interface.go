package repository

import (
	"context"

	"github.com/google/uuid"

	"petmarket-backend/internal/domains/favorite/model"
)

// FavoriteRepository - data access contract for favorites
type FavoriteRepository interface {
	// Add inserts the (user, pet) favorite or returns the existing row.
	// The bool reports whether a new row was created.
	Add(ctx context.Context, userID, petID uuid.UUID) (*model.Favorite, bool, error)
	Remove(ctx context.Context, userID, petID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithPet, error)
}
