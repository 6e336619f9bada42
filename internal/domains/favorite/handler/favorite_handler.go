package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"petmarket-backend/internal/domains/favorite/model"
	"petmarket-backend/internal/domains/favorite/service"
	petmodel "petmarket-backend/internal/domains/pet/model"
	"petmarket-backend/internal/shared/middleware"
	"petmarket-backend/internal/shared/response"
)

type FavoriteHandler struct {
	service service.FavoriteService
}

// NewFavoriteHandler - Constructor
func NewFavoriteHandler(service service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddFavorite - POST /api/v1/favorites/:pet_id
// 201 when the favorite is created, 200 when it already existed.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	petID, ok := h.parsePetID(c)
	if !ok {
		return
	}

	result, err := h.service.Add(c.Request.Context(), userID, petID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	status := http.StatusOK
	message := "Already in favorites"
	if result.WasCreated {
		status = http.StatusCreated
		message = "Pet added to favorites"
	}

	response.Success(c, status, gin.H{
		"message":  message,
		"favorite": result.Favorite,
	})
}

// RemoveFavorite - DELETE /api/v1/favorites/:pet_id
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	petID, ok := h.parsePetID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, petID); err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Pet removed from favorites",
	})
}

// ListFavorites - GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, favorites)
}

func (h *FavoriteHandler) parsePetID(c *gin.Context) (uuid.UUID, bool) {
	petID, err := uuid.Parse(c.Param("pet_id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "Invalid pet ID", "pet_id must be a valid UUID")
		return uuid.Nil, false
	}
	return petID, true
}

func (h *FavoriteHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, petmodel.ErrPetNotFound):
		response.ErrorResponse(c, http.StatusNotFound, petmodel.ErrCodePetNotFound, "Pet not found")
	case errors.Is(err, model.ErrFavoriteNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeFavoriteNotFound, "Favorite not found")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
