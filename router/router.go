// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keyward/keyward/controller"
	"github.com/keyward/keyward/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	api := router.Group("/api/v1")

	controllers.Policy.RegisterRoutes(api)
	controllers.CredentialType.RegisterRoutes(api)
	controllers.Application.RegisterRoutes(api)

	return router
}
