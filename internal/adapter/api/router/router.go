package router

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupServiceRouter(e, authMiddleware)
	SetupMatchRouter(e, authMiddleware)
	SetupProposalRouter(e, authMiddleware)
	SetupProjectRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupWebSocketRouter(e)
}
