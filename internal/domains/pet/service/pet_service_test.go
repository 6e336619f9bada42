package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmarket-backend/internal/domains/pet/model"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[uuid.UUID]model.Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uuid.UUID]model.Pet{}}
}

func (r *testRepo) Create(ctx context.Context, pet *model.Pet) error {
	r.byID[pet.ID] = *pet
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Pet, error) {
	pet, ok := r.byID[id]
	if !ok {
		return nil, model.ErrPetNotFound
	}
	copy := pet
	return &copy, nil
}

func (r *testRepo) Update(ctx context.Context, pet *model.Pet) error {
	if _, ok := r.byID[pet.ID]; !ok {
		return model.ErrPetNotFound
	}
	r.byID[pet.ID] = *pet
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return model.ErrPetNotFound
	}
	delete(r.byID, id)
	return nil
}

// matches mirrors the SQL WHERE clause so filter behavior is testable
// without a database.
func matches(pet model.Pet, f *model.PetFilter) bool {
	if f.Type != "" && pet.Type.String() != f.Type {
		return false
	}
	if f.Breed != "" && pet.Breed != f.Breed {
		return false
	}
	if f.BreedContains != "" && !containsFold(pet.Breed, f.BreedContains) {
		return false
	}
	if f.Gender != "" && pet.Gender.String() != f.Gender {
		return false
	}
	if f.Status != "" && pet.Status.String() != f.Status {
		return false
	}
	if f.Vaccinated != nil && pet.Vaccinated != *f.Vaccinated {
		return false
	}
	if f.City != "" && pet.City != f.City {
		return false
	}
	if f.CityContains != "" && !containsFold(pet.City, f.CityContains) {
		return false
	}
	if f.MinPrice != nil && pet.Price.LessThan(decimal.NewFromFloat(*f.MinPrice)) {
		return false
	}
	if f.MaxPrice != nil && pet.Price.GreaterThan(decimal.NewFromFloat(*f.MaxPrice)) {
		return false
	}
	if f.MinAge != nil && pet.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && pet.Age > *f.MaxAge {
		return false
	}
	if f.Search != "" {
		if !containsFold(pet.Name, f.Search) &&
			!containsFold(pet.Breed, f.Search) &&
			!containsFold(pet.Description, f.Search) &&
			!containsFold(pet.City, f.Search) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (r *testRepo) filtered(f *model.PetFilter) []model.Pet {
	out := make([]model.Pet, 0)
	for _, pet := range r.byID {
		if matches(pet, f) {
			out = append(out, pet)
		}
	}
	return out
}

func (r *testRepo) List(ctx context.Context, f *model.PetFilter) ([]model.Pet, int, error) {
	pets := r.filtered(f)
	total := len(pets)

	sort.Slice(pets, func(i, j int) bool {
		var less bool
		switch f.Sort {
		case "price":
			less = pets[i].Price.LessThan(pets[j].Price)
		case "age":
			less = pets[i].Age < pets[j].Age
		case "name":
			less = pets[i].Name < pets[j].Name
		default:
			less = pets[i].CreatedAt.Before(pets[j].CreatedAt)
		}
		if f.Order == "desc" {
			return !less
		}
		return less
	})

	if f.Offset >= len(pets) {
		return []model.Pet{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(pets) {
		end = len(pets)
	}
	return pets[f.Offset:end], total, nil
}

func (r *testRepo) Stats(ctx context.Context, f *model.PetFilter) (*model.PetStats, error) {
	stats := model.PetStats{}
	for _, pet := range r.filtered(f) {
		stats.Total++
		switch pet.Status {
		case model.PetStatusAdopting:
			stats.Adopting++
		case model.PetStatusSelling:
			stats.Selling++
		case model.PetStatusBreeding:
			stats.Breeding++
		}
		if pet.IsUrgent {
			stats.Urgent++
		}
	}
	return &stats, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.Pet, int, error) {
	out := make([]model.Pet, 0)
	for _, pet := range r.byID {
		if pet.OwnerID == ownerID {
			out = append(out, pet)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return []model.Pet{}, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (r *testRepo) PriceRange(ctx context.Context) (*model.PriceRangeResponse, error) {
	var result model.PriceRangeResponse
	for _, pet := range r.byID {
		price := pet.Price
		if result.MinPrice == nil || price.LessThan(*result.MinPrice) {
			p := price
			result.MinPrice = &p
		}
		if result.MaxPrice == nil || price.GreaterThan(*result.MaxPrice) {
			p := price
			result.MaxPrice = &p
		}
	}
	return &result, nil
}

// -------------------------
// Helpers
// -------------------------

func floatPtr(f float64) *float64 { return &f }

func seedPet(t *testing.T, svc PetService, owner uuid.UUID, req model.CreatePetRequest) *model.Pet {
	t.Helper()
	pet, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)
	return pet
}

func basePetRequest() model.CreatePetRequest {
	return model.CreatePetRequest{
		Name:        "Rex",
		Type:        "dog",
		Breed:       "Labrador",
		Age:         12,
		Gender:      "male",
		Description: "Friendly dog",
		City:        "Hanoi",
	}
}

// -------------------------
// Create
// -------------------------

func TestPetService_Create_ForcesOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()

	pet := seedPet(t, svc, owner, basePetRequest())

	assert.Equal(t, owner, pet.OwnerID)
	assert.Equal(t, model.PetStatusAdopting, pet.Status, "status defaults to adopting")
	assert.True(t, pet.Price.IsZero(), "price defaults to zero")
}

func TestPetService_Create_KeepsExplicitStatusAndPrice(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)

	req := basePetRequest()
	req.Status = "selling"
	req.Price = floatPtr(250.50)

	pet := seedPet(t, svc, uuid.New(), req)

	assert.Equal(t, model.PetStatusSelling, pet.Status)
	assert.True(t, pet.Price.Equal(decimal.NewFromFloat(250.50)))
}

// -------------------------
// Update / Delete authorization
// -------------------------

func TestPetService_Update_MissingPetIsNotFoundEvenForStranger(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)

	name := "Buddy"
	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), model.UpdatePetRequest{Name: &name})

	assert.ErrorIs(t, err, model.ErrPetNotFound)
}

func TestPetService_Update_RejectsNonOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()
	pet := seedPet(t, svc, owner, basePetRequest())

	name := "Buddy"
	_, err := svc.Update(context.Background(), pet.ID, uuid.New(), model.UpdatePetRequest{Name: &name})

	assert.ErrorIs(t, err, model.ErrNotOwner)

	// Nothing changed
	stored, err := svc.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", stored.Name)
}

func TestPetService_Update_OwnerStaysImmutable(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()
	pet := seedPet(t, svc, owner, basePetRequest())

	name := "Buddy"
	updated, err := svc.Update(context.Background(), pet.ID, owner, model.UpdatePetRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Buddy", updated.Name)
	assert.Equal(t, owner, updated.OwnerID)
	assert.Equal(t, pet.CreatedAt, updated.CreatedAt)
}

func TestPetService_Delete_RejectsNonOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()
	pet := seedPet(t, svc, owner, basePetRequest())

	err := svc.Delete(context.Background(), pet.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotOwner)

	err = svc.Delete(context.Background(), pet.ID, owner)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), pet.ID)
	assert.ErrorIs(t, err, model.ErrPetNotFound)
}

// -------------------------
// Change status
// -------------------------

func TestPetService_ChangeStatus(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()
	pet := seedPet(t, svc, owner, basePetRequest())

	updated, err := svc.ChangeStatus(context.Background(), pet.ID, owner, "breeding")
	require.NoError(t, err)
	assert.Equal(t, model.PetStatusBreeding, updated.Status)
}

func TestPetService_ChangeStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	owner := uuid.New()
	pet := seedPet(t, svc, owner, basePetRequest())

	_, err := svc.ChangeStatus(context.Background(), pet.ID, owner, "available")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	stored, err := svc.GetByID(context.Background(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PetStatusAdopting, stored.Status)
}

func TestPetService_ChangeStatus_RejectsNonOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	pet := seedPet(t, svc, uuid.New(), basePetRequest())

	_, err := svc.ChangeStatus(context.Background(), pet.ID, uuid.New(), "selling")
	assert.ErrorIs(t, err, model.ErrNotOwner)
}

// -------------------------
// List / filter / stats
// -------------------------

func seedCatalog(t *testing.T, svc PetService) (uuid.UUID, uuid.UUID) {
	t.Helper()
	alice := uuid.New()
	bob := uuid.New()

	dogs := basePetRequest()
	dogs.Price = floatPtr(100)
	seedPet(t, svc, alice, dogs)

	cat := model.CreatePetRequest{
		Name: "Misty", Type: "cat", Breed: "Siamese", Age: 6, Gender: "female",
		Description: "Calm and friendly", Status: "selling", Price: floatPtr(300),
		City: "Saigon", IsUrgent: true,
	}
	seedPet(t, svc, alice, cat)

	bird := model.CreatePetRequest{
		Name: "Kiwi", Type: "bird", Breed: "Parakeet", Age: 3, Gender: "male",
		Description: "Loud singer", Status: "breeding", Price: floatPtr(50),
		City: "Hanoi",
	}
	seedPet(t, svc, bob, bird)

	return alice, bob
}

func TestPetService_List_FiltersAreConjunctive(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{Type: "dog", City: "Hanoi"}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Pets, 1)
	assert.Equal(t, "Rex", result.Pets[0].Name)

	// The bird is also in Hanoi but is not a dog
	req = &model.ListPetsRequest{City: "Hanoi"}
	require.NoError(t, req.Validate())
	result, err = svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Pets, 2)
}

func TestPetService_List_InvertedRangeSelectsNothing(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{MinPrice: floatPtr(500), MaxPrice: floatPtr(100)}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, result.Pets)
	assert.Equal(t, 0, result.Stats.Total)
	assert.Equal(t, 0, result.Pagination.Total)
}

func TestPetService_List_StatsCoverFilteredSetNotPage(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{Limit: 1}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, result.Pets, 1, "page is capped")
	assert.Equal(t, 3, result.Stats.Total, "stats span the whole filtered set")
	assert.Equal(t, result.Stats.Total,
		result.Stats.Adopting+result.Stats.Selling+result.Stats.Breeding,
		"statuses partition the total")
	assert.Equal(t, 1, result.Stats.Urgent)
}

func TestPetService_List_StatsFollowTheFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{City: "Hanoi"}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Total)
	assert.Equal(t, 0, result.Stats.Selling, "the Saigon cat is filtered out")
	assert.Equal(t, 0, result.Stats.Urgent)
}

func TestPetService_List_SearchMatchesAnyColumn(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{Search: "friendly"}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Pets, 2, "matches dog and cat descriptions")

	req = &model.ListPetsRequest{Search: "no-such-pet"}
	require.NoError(t, req.Validate())
	result, err = svc.List(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.Pets)
}

func TestPetService_List_SortByPrice(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{Sort: "price", Order: "asc"}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Pets, 3)
	assert.Equal(t, "Kiwi", result.Pets[0].Name)
	assert.Equal(t, "Misty", result.Pets[2].Name)
}

func TestPetService_List_PaginationMeta(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	seedCatalog(t, svc)

	req := &model.ListPetsRequest{Page: 2, Limit: 2}
	require.NoError(t, req.Validate())

	result, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, result.Pets, 1)
	assert.Equal(t, 3, result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

// -------------------------
// ListMine
// -------------------------

func TestPetService_ListMine_ScopedToOwner(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)
	alice, bob := seedCatalog(t, svc)

	pets, meta, err := svc.ListMine(context.Background(), alice, 1, 20)
	require.NoError(t, err)
	assert.Len(t, pets, 2)
	assert.Equal(t, 2, meta.Total)

	pets, meta, err = svc.ListMine(context.Background(), bob, 1, 20)
	require.NoError(t, err)
	assert.Len(t, pets, 1)
	assert.Equal(t, 1, meta.Total)

	pets, meta, err = svc.ListMine(context.Background(), uuid.New(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, pets)
	assert.Equal(t, 0, meta.Total)
}

// -------------------------
// Price range
// -------------------------

func TestPetService_PriceRange(t *testing.T) {
	repo := newTestRepo()
	svc := NewPetService(repo)

	result, err := svc.PriceRange(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result.MinPrice, "empty catalog has no bounds")
	assert.Nil(t, result.MaxPrice)

	seedCatalog(t, svc)

	result, err = svc.PriceRange(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.MinPrice)
	require.NotNil(t, result.MaxPrice)
	assert.True(t, result.MinPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.MaxPrice.Equal(decimal.NewFromInt(300)))
}
