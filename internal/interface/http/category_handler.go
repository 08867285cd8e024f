package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"expense-tracker-api/internal/application"
	"expense-tracker-api/pkg/response"
	"expense-tracker-api/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
	Dev    bool
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger, dev bool) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger, Dev: dev}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Icon        string `json:"icon" binding:"omitempty,max=50"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Svc.List(c.Request.Context(), userID(c))
	if err != nil {
		internal(c, h.Logger, h.Dev, err, "list categories failed")
		return
	}
	response.Success(c, http.StatusOK, cats, "categories", nil)
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cat, err := h.Svc.Create(c.Request.Context(), userID(c), application.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateCategory) {
			response.Error(c, http.StatusConflict, "category name already exists", nil)
			return
		}
		internal(c, h.Logger, h.Dev, err, "create category failed")
		return
	}
	response.Success(c, http.StatusCreated, cat, "category created", nil)
}

// Update PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	cat, err := h.Svc.Update(c.Request.Context(), userID(c), id, application.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCategoryNotFound):
			response.Error(c, http.StatusNotFound, "category not found", nil)
		case errors.Is(err, application.ErrDuplicateCategory):
			response.Error(c, http.StatusConflict, "category name already exists", nil)
		default:
			internal(c, h.Logger, h.Dev, err, "update category failed")
		}
		return
	}
	response.Success(c, http.StatusOK, cat, "category updated", nil)
}

// Delete DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		if errors.Is(err, application.ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "category not found", nil)
			return
		}
		internal(c, h.Logger, h.Dev, err, "delete category failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "category deleted", nil)
}
