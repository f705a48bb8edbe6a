package router

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/adapter/api/handler"
	"skillswap/internal/adapter/api/middleware"
)

func SetupProjectRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	projectHandler := handler.GetProjectHandler()
	reviewHandler := handler.GetReviewHandler()

	projects := e.Group("/v1/projects", authMiddleware.Authenticate)
	projects.GET("", projectHandler.ListProjects)
	projects.GET("/:id", projectHandler.GetProject)
	projects.POST("/:id/milestones", projectHandler.AddMilestone)
	projects.PATCH("/:id/milestones/:milestoneId", projectHandler.AdvanceMilestone)
	projects.POST("/:id/deliverables", projectHandler.AddDeliverable)
	projects.PATCH("/:id/deliverables/:deliverableId", projectHandler.AdvanceDeliverable)
	projects.POST("/:id/complete", projectHandler.CompleteProject)
	projects.POST("/:id/cancel", projectHandler.CancelProject)
	projects.POST("/:id/reviews", reviewHandler.SubmitReview)
	projects.GET("/:id/reviews", reviewHandler.ListProjectReviews)
}
