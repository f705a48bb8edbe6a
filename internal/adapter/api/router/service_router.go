package router

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/handler"
	"skillswap/internal/adapter/api/middleware"
)

func SetupServiceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	serviceHandler := handler.GetServiceHandler()

	services := e.Group("/v1/services")
	services.GET("", serviceHandler.ListServices)
	services.GET("/:id", serviceHandler.GetService)
	services.POST("", serviceHandler.CreateService, authMiddleware.Authenticate)
	services.PATCH("/:id", serviceHandler.UpdateService, authMiddleware.Authenticate)
	services.DELETE("/:id", serviceHandler.DeactivateService, authMiddleware.Authenticate)
}
