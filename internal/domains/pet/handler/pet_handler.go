package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"petmarket-backend/internal/domains/pet/model"
	"petmarket-backend/internal/domains/pet/service"
	"petmarket-backend/internal/shared/middleware"
	"petmarket-backend/internal/shared/response"
)

type PetHandler struct {
	service service.PetService
}

// NewPetHandler - Constructor
func NewPetHandler(service service.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// ========================================
// PUBLIC ENDPOINTS
// ========================================

// ListPets - GET /api/v1/pets
func (h *PetHandler) ListPets(c *gin.Context) {
	var req model.ListPetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid query parameters", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetPet - GET /api/v1/pets/:id
func (h *PetHandler) GetPet(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	pet, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pet)
}

// GetPriceRange - GET /api/v1/pets/price-range
func (h *PetHandler) GetPriceRange(c *gin.Context) {
	result, err := h.service.PriceRange(c.Request.Context())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ========================================
// AUTHENTICATED ENDPOINTS
// ========================================

// CreatePet - POST /api/v1/pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Validation failed", err.Error())
		return
	}

	pet, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, pet)
}

// UpdatePet - PUT /api/v1/pets/:id, full replacement of mutable fields
func (h *PetHandler) UpdatePet(c *gin.Context) {
	h.update(c, false)
}

// PatchPet - PATCH /api/v1/pets/:id, partial update
func (h *PetHandler) PatchPet(c *gin.Context) {
	h.update(c, true)
}

func (h *PetHandler) update(c *gin.Context, partial bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(partial); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Validation failed", err.Error())
		return
	}

	pet, err := h.service.Update(c.Request.Context(), id, userID, req)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pet)
}

// DeletePet - DELETE /api/v1/pets/:id
func (h *PetHandler) DeletePet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.mapError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangeStatus - POST /api/v1/pets/:id/status
func (h *PetHandler) ChangeStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidStatus, "Validation failed", err.Error())
		return
	}

	pet, err := h.service.ChangeStatus(c.Request.Context(), id, userID, req.Status)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, pet)
}

// ListMyPets - GET /api/v1/pets/mine
func (h *PetHandler) ListMyPets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var query struct {
		Page  int `form:"page"`
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid query parameters", err.Error())
		return
	}

	pets, meta, err := h.service.ListMine(c.Request.Context(), userID, query.Page, query.Limit)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, pets, &response.Meta{
		Page:  meta.Page,
		Limit: meta.Limit,
		Total: meta.Total,
	})
}

// ========================================
// HELPERS
// ========================================

func (h *PetHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid pet ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *PetHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPetNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodePetNotFound, "Pet not found")
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "You do not own this pet")
	case errors.Is(err, model.ErrInvalidStatus):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidStatus, "status must be one of: adopting, selling, breeding")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
