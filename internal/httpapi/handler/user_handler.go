package handler

import (
	"net/http"

	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/middleware"
	"titlehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers the admin-managed directory plus the self-service
// profile. The static "me" segment is registered alongside :username; gin
// resolves the static route first.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me/", middleware.RequireAuthenticated(), h.GetProfile)
		users.PATCH("/me/", middleware.RequireAuthenticated(), h.UpdateProfile)

		admin := users.Group("", middleware.RequireAdmin())
		{
			admin.GET("/", h.List)
			admin.POST("/", h.Create)
			admin.GET("/:username/", h.Get)
			admin.PATCH("/:username/", h.Update)
			admin.DELETE("/:username/", h.Delete)
		}
	}
}

// List handles GET /v1/users/?search=&role=
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	users, total, err := h.userService.List(c.Request.Context(), c.Query("search"), c.Query("role"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.UserFromModel(&users[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(responses, int(total), page, pageSize))
}

// Get handles GET /v1/users/:username/
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Create handles POST /v1/users/
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserFromModel(user))
}

// Update handles PATCH /v1/users/:username/
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}

// Delete handles DELETE /v1/users/:username/
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile handles GET /v1/users/me/
func (h *UserHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, dto.UserFromModel(middleware.CurrentUser(c)))
}

// UpdateProfile handles PATCH /v1/users/me/. A role field in the body is
// ignored: the stored role survives every update through this path.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(user))
}
