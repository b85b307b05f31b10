package handler

import (
	"net/http"
	"strconv"

	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/middleware"
	"titlehub/internal/httpapi/repository"
	"titlehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes: public reads, admin writes.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	titles := router.Group("/titles")
	{
		titles.GET("/", h.List)
		titles.GET("/:title_id/", h.Get)
		titles.POST("/", middleware.RequireAdmin(), h.Create)
		titles.PATCH("/:title_id/", middleware.RequireAdmin(), h.Update)
		titles.DELETE("/:title_id/", middleware.RequireAdmin(), h.Delete)
	}
}

// List handles GET /v1/titles/?category=&genre=&name=&year=
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	year, _ := strconv.Atoi(c.Query("year"))
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
		Year:         year,
	}

	titles, total, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for _, title := range titles {
		responses = append(responses, dto.TitleFromModel(title))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, int(total), page, pageSize))
}

// Get handles GET /v1/titles/:title_id/
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*title))
}

// Create handles POST /v1/titles/
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(*title))
}

// Update handles PATCH /v1/titles/:title_id/
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*title))
}

// Delete handles DELETE /v1/titles/:title_id/
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
