package router

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/handler"
	"skillswap/internal/adapter/api/middleware"
)

func SetupProposalRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	proposalHandler := handler.GetProposalHandler()

	proposals := e.Group("/v1/proposals", authMiddleware.Authenticate)
	proposals.POST("", proposalHandler.CreateProposal)
	proposals.GET("", proposalHandler.ListProposals)
	proposals.GET("/:id", proposalHandler.GetProposal)
	proposals.POST("/:id/respond", proposalHandler.RespondToProposal)
}
