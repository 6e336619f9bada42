package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petmarket-backend/internal/domains/favorite/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &postgresRepository{pool: pool}
}

// ========================================
// ADD (get-or-create)
// ========================================

// Add relies on the unique index on (user_id, pet_id). ON CONFLICT DO
// NOTHING makes concurrent duplicate requests safe: exactly one insert
// wins and everyone else falls through to the select.
func (r *postgresRepository) Add(ctx context.Context, userID, petID uuid.UUID) (*model.Favorite, bool, error) {
	insertQuery := `
		INSERT INTO favorites (id, user_id, pet_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, pet_id) DO NOTHING
		RETURNING id, user_id, pet_id, created_at
	`

	var fav model.Favorite
	err := r.pool.QueryRow(ctx, insertQuery, uuid.New(), userID, petID).
		Scan(&fav.ID, &fav.UserID, &fav.PetID, &fav.CreatedAt)
	if err == nil {
		return &fav, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to add favorite: %w", err)
	}

	// No row returned means the favorite already exists, fetch it
	selectQuery := `
		SELECT id, user_id, pet_id, created_at
		FROM favorites
		WHERE user_id = $1 AND pet_id = $2
	`
	err = r.pool.QueryRow(ctx, selectQuery, userID, petID).
		Scan(&fav.ID, &fav.UserID, &fav.PetID, &fav.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add favorite: %w", err)
	}

	return &fav, false, nil
}

// ========================================
// REMOVE
// ========================================

func (r *postgresRepository) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND pet_id = $2`,
		userID, petID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFavoriteNotFound
	}
	return nil
}

// ========================================
// LIST BY USER
// ========================================

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithPet, error) {
	query := `
		SELECT
			f.id, f.user_id, f.pet_id, f.created_at,
			p.id, p.name, p.type, p.breed, p.age, p.gender, p.description,
			p.status, p.price, p.vaccinated, p.is_urgent, p.city, p.image,
			p.owner_id, p.created_at, p.updated_at
		FROM favorites f
		JOIN pets p ON p.id = f.pet_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteWithPet, 0)
	for rows.Next() {
		var fav model.FavoriteWithPet
		err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.PetID, &fav.CreatedAt,
			&fav.Pet.ID, &fav.Pet.Name, &fav.Pet.Type, &fav.Pet.Breed,
			&fav.Pet.Age, &fav.Pet.Gender, &fav.Pet.Description,
			&fav.Pet.Status, &fav.Pet.Price, &fav.Pet.Vaccinated,
			&fav.Pet.IsUrgent, &fav.Pet.City, &fav.Pet.Image,
			&fav.Pet.OwnerID, &fav.Pet.CreatedAt, &fav.Pet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return favorites, nil
}
