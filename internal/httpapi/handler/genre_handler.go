package handler

import (
	"net/http"

	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/middleware"
	"titlehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: public reads, admin writes.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	{
		genres.GET("/", h.List)
		genres.POST("/", middleware.RequireAdmin(), h.Create)
		genres.DELETE("/:slug/", middleware.RequireAdmin(), h.Delete)
	}
}

// List handles GET /v1/genres/?search=&page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	genres, total, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		responses = append(responses, dto.GenreFromModel(genre))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, int(total), page, pageSize))
}

// Create handles POST /v1/genres/
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre := req.ToModel()
	if err := h.genreService.Create(c.Request.Context(), &genre); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(genre))
}

// Delete handles DELETE /v1/genres/:slug/
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
