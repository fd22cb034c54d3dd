package routes

import (
	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/ezmeo/wheel-backend/internal/handlers"
	"github.com/ezmeo/wheel-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	WheelHandler      *handlers.WheelHandler
	AdminWheelHandler *handlers.AdminWheelHandler
	AuthHandler       *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public storefront routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		wheel := public.Group("/wheel")
		{
			wheel.GET("", deps.WheelHandler.GetWheel)
			wheel.POST("/validate", deps.WheelHandler.Validate)
			wheel.POST("/spin", deps.WheelHandler.Spin)
		}

		public.POST("/admin/auth/login", deps.AuthHandler.Login)
	}

	// Back-office routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	{
		admin.POST("/auth/register", middleware.RequireRole("admin"), deps.AuthHandler.Register)

		wheel := admin.Group("/wheel")
		{
			wheel.GET("/configs", deps.AdminWheelHandler.ListConfigs)
			wheel.POST("/configs", deps.AdminWheelHandler.CreateConfig)
			wheel.GET("/configs/:ref", deps.AdminWheelHandler.GetWheel)
			wheel.PUT("/configs/:ref", deps.AdminWheelHandler.UpdateConfig)
			wheel.DELETE("/configs/:ref", deps.AdminWheelHandler.DeleteConfig)
			wheel.GET("/configs/:ref/spins", deps.AdminWheelHandler.GetSpinHistory)
			wheel.GET("/configs/:ref/stats", deps.AdminWheelHandler.GetSpinStats)
			wheel.GET("/configs/:ref/coupons", deps.AdminWheelHandler.ListCoupons)

			wheel.POST("/prizes", deps.AdminWheelHandler.CreatePrize)
			wheel.PUT("/prizes/:id", deps.AdminWheelHandler.UpdatePrize)
			wheel.DELETE("/prizes/:id", deps.AdminWheelHandler.DeletePrize)

			wheel.GET("/coupons/:code", deps.AdminWheelHandler.GetCoupon)
		}
	}

	return router
}
