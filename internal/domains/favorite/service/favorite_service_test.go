package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmarket-backend/internal/domains/favorite/model"
	petmodel "petmarket-backend/internal/domains/pet/model"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type pairKey struct {
	userID uuid.UUID
	petID  uuid.UUID
}

type testFavoriteRepo struct {
	byPair map[pairKey]model.Favorite
}

func newTestFavoriteRepo() *testFavoriteRepo {
	return &testFavoriteRepo{byPair: map[pairKey]model.Favorite{}}
}

func (r *testFavoriteRepo) Add(ctx context.Context, userID, petID uuid.UUID) (*model.Favorite, bool, error) {
	key := pairKey{userID, petID}
	if existing, ok := r.byPair[key]; ok {
		copy := existing
		return &copy, false, nil
	}
	fav := model.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		PetID:     petID,
		CreatedAt: time.Now(),
	}
	r.byPair[key] = fav
	return &fav, true, nil
}

func (r *testFavoriteRepo) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	key := pairKey{userID, petID}
	if _, ok := r.byPair[key]; !ok {
		return model.ErrFavoriteNotFound
	}
	delete(r.byPair, key)
	return nil
}

func (r *testFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.FavoriteWithPet, error) {
	out := make([]model.FavoriteWithPet, 0)
	for key, fav := range r.byPair {
		if key.userID == userID {
			out = append(out, model.FavoriteWithPet{Favorite: fav})
		}
	}
	return out, nil
}

// testPetRepo only needs GetByID; everything else is unused here.
type testPetRepo struct {
	byID map[uuid.UUID]petmodel.Pet
}

func newTestPetRepo() *testPetRepo {
	return &testPetRepo{byID: map[uuid.UUID]petmodel.Pet{}}
}

func (r *testPetRepo) GetByID(ctx context.Context, id uuid.UUID) (*petmodel.Pet, error) {
	pet, ok := r.byID[id]
	if !ok {
		return nil, petmodel.ErrPetNotFound
	}
	return &pet, nil
}

func (r *testPetRepo) Create(ctx context.Context, pet *petmodel.Pet) error {
	r.byID[pet.ID] = *pet
	return nil
}

func (r *testPetRepo) Update(ctx context.Context, pet *petmodel.Pet) error { return nil }
func (r *testPetRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *testPetRepo) List(ctx context.Context, filter *petmodel.PetFilter) ([]petmodel.Pet, int, error) {
	return nil, 0, nil
}

func (r *testPetRepo) Stats(ctx context.Context, filter *petmodel.PetFilter) (*petmodel.PetStats, error) {
	return &petmodel.PetStats{}, nil
}

func (r *testPetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]petmodel.Pet, int, error) {
	return nil, 0, nil
}

func (r *testPetRepo) PriceRange(ctx context.Context) (*petmodel.PriceRangeResponse, error) {
	return &petmodel.PriceRangeResponse{}, nil
}

func seedTestPet(repo *testPetRepo) uuid.UUID {
	id := uuid.New()
	repo.byID[id] = petmodel.Pet{ID: id, Name: "Rex", OwnerID: uuid.New()}
	return id
}

// -------------------------
// Tests
// -------------------------

func TestFavoriteService_Add_IsIdempotent(t *testing.T) {
	petRepo := newTestPetRepo()
	svc := NewFavoriteService(newTestFavoriteRepo(), petRepo)
	petID := seedTestPet(petRepo)
	userID := uuid.New()

	first, err := svc.Add(context.Background(), userID, petID)
	require.NoError(t, err)
	assert.True(t, first.WasCreated)

	second, err := svc.Add(context.Background(), userID, petID)
	require.NoError(t, err)
	assert.False(t, second.WasCreated)
	assert.Equal(t, first.Favorite.ID, second.Favorite.ID, "repeat returns the original favorite")
}

func TestFavoriteService_Add_MissingPet(t *testing.T) {
	favRepo := newTestFavoriteRepo()
	svc := NewFavoriteService(favRepo, newTestPetRepo())

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, petmodel.ErrPetNotFound)
	assert.Empty(t, favRepo.byPair, "no dangling favorite is written")
}

func TestFavoriteService_Add_SamePetDifferentUsers(t *testing.T) {
	petRepo := newTestPetRepo()
	svc := NewFavoriteService(newTestFavoriteRepo(), petRepo)
	petID := seedTestPet(petRepo)

	first, err := svc.Add(context.Background(), uuid.New(), petID)
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), uuid.New(), petID)
	require.NoError(t, err)

	assert.True(t, first.WasCreated)
	assert.True(t, second.WasCreated, "uniqueness is per user, not per pet")
}

func TestFavoriteService_Remove(t *testing.T) {
	petRepo := newTestPetRepo()
	svc := NewFavoriteService(newTestFavoriteRepo(), petRepo)
	petID := seedTestPet(petRepo)
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, petID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), userID, petID))

	err = svc.Remove(context.Background(), userID, petID)
	assert.ErrorIs(t, err, model.ErrFavoriteNotFound, "removing twice reports not found")
}

func TestFavoriteService_ListByUser_IsScoped(t *testing.T) {
	petRepo := newTestPetRepo()
	svc := NewFavoriteService(newTestFavoriteRepo(), petRepo)
	petID := seedTestPet(petRepo)
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Add(context.Background(), alice, petID)
	require.NoError(t, err)

	mine, err := svc.ListByUser(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListByUser(context.Background(), bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
