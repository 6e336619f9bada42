package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"petmarket-backend/internal/domains/contact/model"
	"petmarket-backend/internal/domains/contact/service"
	"petmarket-backend/internal/shared/response"
)

type ContactHandler struct {
	service service.ContactService
}

// NewContactHandler - Constructor
func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitMessage - POST /api/v1/contact
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeValidationFailed, "Validation failed", err.Error())
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Something went wrong")
		return
	}

	response.Success(c, http.StatusCreated, msg)
}
