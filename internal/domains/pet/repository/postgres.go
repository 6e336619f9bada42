package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petmarket-backend/internal/domains/pet/model"
	"petmarket-backend/internal/shared/utils"
	"petmarket-backend/pkg/cache"
	"petmarket-backend/pkg/logger"
)

const (
	petCacheTTL        = 5 * time.Minute
	priceRangeCacheTTL = 10 * time.Minute
	priceRangeCacheKey = "pets:price_range"
)

const petColumns = `id, name, type, breed, age, gender, description, status,
		price, vaccinated, is_urgent, city, image, owner_id, created_at, updated_at`

// sortColumns whitelists sortable fields. Anything else is rejected at
// the DTO layer, this map is the last line of defense against injection.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "price",
	"age":        "age",
	"name":       "name",
}

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) PetRepository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, pet *model.Pet) error {
	query := `
		INSERT INTO pets (id, name, type, breed, age, gender, description, status,
			price, vaccinated, is_urgent, city, image, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		pet.ID, pet.Name, pet.Type, pet.Breed, pet.Age, pet.Gender,
		pet.Description, pet.Status, pet.Price, pet.Vaccinated, pet.IsUrgent,
		pet.City, pet.Image, pet.OwnerID, pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert pet: %w", err)
	}

	r.invalidateListingCaches(ctx)
	return nil
}

// ========================================
// GET BY ID (cache-aside)
// ========================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	cacheKey := petCacheKey(id)

	var cached model.Pet
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM pets WHERE id = $1`, petColumns)

	pet, err := r.scanPet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, pet, petCacheTTL); err != nil {
		logger.Debug("Failed to cache pet detail")
	}

	return pet, nil
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) Update(ctx context.Context, pet *model.Pet) error {
	query := `
		UPDATE pets
		SET name = $2, type = $3, breed = $4, age = $5, gender = $6,
			description = $7, status = $8, price = $9, vaccinated = $10,
			is_urgent = $11, city = $12, image = $13, updated_at = $14
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		pet.ID, pet.Name, pet.Type, pet.Breed, pet.Age, pet.Gender,
		pet.Description, pet.Status, pet.Price, pet.Vaccinated, pet.IsUrgent,
		pet.City, pet.Image, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPetNotFound
	}

	r.invalidatePet(ctx, pet.ID)
	return nil
}

// ========================================
// DELETE
// ========================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPetNotFound
	}

	r.invalidatePet(ctx, id)
	return nil
}

// ========================================
// LIST (filter + search + sort + paginate)
// ========================================

func (r *postgresRepository) List(ctx context.Context, filter *model.PetFilter) ([]model.Pet, int, error) {
	whereClause, args, argIndex := buildWhereClause(filter)

	// Total over the filtered set, before pagination
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM pets %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	orderClause := buildOrderClause(filter.Sort, filter.Order)

	query := fmt.Sprintf(`
		SELECT %s
		FROM pets
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, petColumns, whereClause, orderClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}
	defer rows.Close()

	pets, err := scanPets(rows)
	if err != nil {
		return nil, 0, err
	}

	return pets, total, nil
}

// ========================================
// STATS (same filtered set as List)
// ========================================

func (r *postgresRepository) Stats(ctx context.Context, filter *model.PetFilter) (*model.PetStats, error) {
	whereClause, args, _ := buildWhereClause(filter)

	// Single pass over the filtered rows; pagination never applies here.
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'adopting') AS adopting,
			COUNT(*) FILTER (WHERE status = 'selling') AS selling,
			COUNT(*) FILTER (WHERE status = 'breeding') AS breeding,
			COUNT(*) FILTER (WHERE is_urgent) AS urgent
		FROM pets
		%s
	`, whereClause)

	var stats model.PetStats
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Adopting, &stats.Selling, &stats.Breeding, &stats.Urgent,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pet stats: %w", err)
	}

	return &stats, nil
}

// ========================================
// LIST BY OWNER
// ========================================

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Pet, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pets WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count owned pets: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, petColumns)

	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list owned pets: %w", err)
	}
	defer rows.Close()

	pets, err := scanPets(rows)
	if err != nil {
		return nil, 0, err
	}

	return pets, total, nil
}

// ========================================
// PRICE RANGE (cache-aside)
// ========================================

func (r *postgresRepository) PriceRange(ctx context.Context) (*model.PriceRangeResponse, error) {
	var cached model.PriceRangeResponse
	if found, err := r.cache.Get(ctx, priceRangeCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	// MIN/MAX return NULL on an empty table, the pointers carry that through.
	var result model.PriceRangeResponse
	err := r.pool.QueryRow(ctx, `SELECT MIN(price), MAX(price) FROM pets`).
		Scan(&result.MinPrice, &result.MaxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}

	if err := r.cache.Set(ctx, priceRangeCacheKey, result, priceRangeCacheTTL); err != nil {
		logger.Debug("Failed to cache price range")
	}

	return &result, nil
}

// ========================================
// QUERY BUILDING
// ========================================

// buildWhereClause turns the filter into a WHERE clause. Returns the
// clause (empty string when no filter is set), the args, and the next
// free placeholder index.
func buildWhereClause(filter *model.PetFilter) (string, []interface{}, int) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIndex))
		args = append(args, filter.Type)
		argIndex++
	}
	if filter.Breed != "" {
		conditions = append(conditions, fmt.Sprintf("breed = $%d", argIndex))
		args = append(args, filter.Breed)
		argIndex++
	}
	if filter.BreedContains != "" {
		conditions = append(conditions, fmt.Sprintf("breed ILIKE $%d", argIndex))
		args = append(args, "%"+filter.BreedContains+"%")
		argIndex++
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", argIndex))
		args = append(args, filter.Gender)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Vaccinated != nil {
		conditions = append(conditions, fmt.Sprintf("vaccinated = $%d", argIndex))
		args = append(args, *filter.Vaccinated)
		argIndex++
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, filter.City)
		argIndex++
	}
	if filter.CityContains != "" {
		conditions = append(conditions, fmt.Sprintf("city ILIKE $%d", argIndex))
		args = append(args, "%"+filter.CityContains+"%")
		argIndex++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}
	if filter.MinAge != nil {
		conditions = append(conditions, fmt.Sprintf("age >= $%d", argIndex))
		args = append(args, *filter.MinAge)
		argIndex++
	}
	if filter.MaxAge != nil {
		conditions = append(conditions, fmt.Sprintf("age <= $%d", argIndex))
		args = append(args, *filter.MaxAge)
		argIndex++
	}
	if filter.Search != "" {
		// One term matched against every searchable column
		searchCond := utils.JoinWithOr([]string{
			fmt.Sprintf("name ILIKE $%d", argIndex),
			fmt.Sprintf("breed ILIKE $%d", argIndex),
			fmt.Sprintf("description ILIKE $%d", argIndex),
			fmt.Sprintf("city ILIKE $%d", argIndex),
		})
		conditions = append(conditions, "("+searchCond+")")
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args, argIndex
	}
	return "WHERE " + utils.JoinWithAnd(conditions), args, argIndex
}

func buildOrderClause(sort, order string) string {
	column, ok := sortColumns[sort]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if order == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// ========================================
// SCANNING + CACHE HELPERS
// ========================================

func (r *postgresRepository) scanPet(row pgx.Row) (*model.Pet, error) {
	var pet model.Pet
	err := row.Scan(
		&pet.ID, &pet.Name, &pet.Type, &pet.Breed, &pet.Age, &pet.Gender,
		&pet.Description, &pet.Status, &pet.Price, &pet.Vaccinated, &pet.IsUrgent,
		&pet.City, &pet.Image, &pet.OwnerID, &pet.CreatedAt, &pet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func scanPets(rows pgx.Rows) ([]model.Pet, error) {
	pets := make([]model.Pet, 0)
	for rows.Next() {
		var pet model.Pet
		err := rows.Scan(
			&pet.ID, &pet.Name, &pet.Type, &pet.Breed, &pet.Age, &pet.Gender,
			&pet.Description, &pet.Status, &pet.Price, &pet.Vaccinated, &pet.IsUrgent,
			&pet.City, &pet.Image, &pet.OwnerID, &pet.CreatedAt, &pet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return pets, nil
}

func petCacheKey(id uuid.UUID) string {
	return "pets:detail:" + id.String()
}

func (r *postgresRepository) invalidatePet(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, petCacheKey(id)); err != nil {
		logger.Debug("Failed to invalidate pet detail cache")
	}
	r.invalidateListingCaches(ctx)
}

func (r *postgresRepository) invalidateListingCaches(ctx context.Context) {
	if err := r.cache.Delete(ctx, priceRangeCacheKey); err != nil {
		logger.Debug("Failed to invalidate price range cache")
	}
}
