package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/forkfeed/forkfeed-backend/internal/api"
	"github.com/forkfeed/forkfeed-backend/internal/middleware"
	"github.com/forkfeed/forkfeed-backend/internal/service"
)

// SetupRouter configures the application routes. The rate limiter is
// optional and skipped when nil (no Redis configured).
func SetupRouter(
	db *gorm.DB,
	auth *service.AuthService,
	images service.ImageStore,
	limiter *middleware.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	api.NewHealthHandler(db).RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(limiter.RateLimitMiddleware())
	}

	api.NewAuthHandler(auth).RegisterRoutes(v1)
	api.NewTagHandler(db).RegisterRoutes(v1)
	api.NewIngredientHandler(db).RegisterRoutes(v1)
	api.NewRecipeHandler(db, images).RegisterRoutes(v1, auth)
	api.NewUserHandler(db).RegisterRoutes(v1, auth)

	return router
}
