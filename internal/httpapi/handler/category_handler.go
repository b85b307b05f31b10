package handler

import (
	"net/http"

	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/middleware"
	"titlehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: public reads, admin writes.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("/", h.List)
		categories.POST("/", middleware.RequireAdmin(), h.Create)
		categories.DELETE("/:slug/", middleware.RequireAdmin(), h.Delete)
	}
}

// List handles GET /v1/categories/?search=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	categories, total, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, int(total), page, pageSize))
}

// Create handles POST /v1/categories/
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.ToModel()
	if err := h.categoryService.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(category))
}

// Delete handles DELETE /v1/categories/:slug/
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
