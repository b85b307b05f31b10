package httpapi

import (
	"titlehub/internal/config"
	"titlehub/internal/httpapi/handler"
	"titlehub/internal/httpapi/middleware"
	"titlehub/internal/httpapi/repository"
	"titlehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Handlers groups the per-resource handlers for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
	User     *handler.UserHandler
}

// NewRouter assembles the gin engine: logging and recovery on everything,
// optional authentication on /v1 (identity resolved when a token is present,
// anonymous otherwise), and a rate limiter on the auth endpoints.
func NewRouter(cfg *config.Config, authService service.AuthService, userRepo repository.UserRepository, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.RedirectTrailingSlash = true

	v1 := r.Group("/v1")
	v1.Use(middleware.Authenticate(authService, userRepo))

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(rate.Limit(cfg.AuthRateRPS), cfg.AuthRateBurst))
	h.Auth.RegisterRoutes(auth)

	h.Category.RegisterRoutes(v1)
	h.Genre.RegisterRoutes(v1)
	h.Title.RegisterRoutes(v1)
	h.Review.RegisterRoutes(v1)
	h.Comment.RegisterRoutes(v1)
	h.User.RegisterRoutes(v1)

	return r
}
