package router

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/handler"
	"skillswap/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()
	serviceHandler := handler.GetServiceHandler()
	reviewHandler := handler.GetReviewHandler()

	users := e.Group("/v1/users")
	users.PATCH("/me", userHandler.UpdateProfile, authMiddleware.Authenticate)
	users.GET("/me/services", serviceHandler.ListMyServices, authMiddleware.Authenticate)
	users.GET("/:id", userHandler.GetProfile)
	users.GET("/:id/services", serviceHandler.ListUserServices)
	users.GET("/:id/reviews", reviewHandler.ListUserReviews)
}
