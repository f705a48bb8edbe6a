package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"skillswap/internal/domain/entity"
	"skillswap/internal/usecase"
	"skillswap/pkg/errors"
	"skillswap/pkg/response"
)

type ProjectHandler struct {
	projectUseCase *usecase.ProjectUseCase
}

func NewProjectHandler(projectUseCase *usecase.ProjectUseCase) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
	}
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.GetProject(c.Request().Context(), userID, projectID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	userID := c.Get("uid").(string)

	projects, err := h.projectUseCase.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, projects)
}

type addMilestoneRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func (h *ProjectHandler) AddMilestone(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	var req addMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.AddMilestone(c.Request().Context(), userID, projectID, usecase.AddMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, project)
}

type advanceMilestoneRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

func (h *ProjectHandler) AdvanceMilestone(c echo.Context) error {
	projectID := c.Param("id")
	milestoneID := c.Param("milestoneId")
	if projectID == "" || milestoneID == "" {
		return response.Error(c, errors.BadRequest("Project ID and milestone ID are required", nil))
	}

	var req advanceMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.AdvanceMilestone(c.Request().Context(), userID, projectID, milestoneID, entity.MilestoneStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

type addDeliverableRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	FileRef     string `json:"file_ref,omitempty"`
}

func (h *ProjectHandler) AddDeliverable(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	var req addDeliverableRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.AddDeliverable(c.Request().Context(), userID, projectID, usecase.AddDeliverableInput{
		Title:       req.Title,
		Description: req.Description,
		FileRef:     req.FileRef,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, project)
}

type advanceDeliverableRequest struct {
	Status string `json:"status" validate:"required,oneof=pending submitted approved revision_requested"`
}

func (h *ProjectHandler) AdvanceDeliverable(c echo.Context) error {
	projectID := c.Param("id")
	deliverableID := c.Param("deliverableId")
	if projectID == "" || deliverableID == "" {
		return response.Error(c, errors.BadRequest("Project ID and deliverable ID are required", nil))
	}

	var req advanceDeliverableRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.AdvanceDeliverable(c.Request().Context(), userID, projectID, deliverableID, entity.DeliverableStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

func (h *ProjectHandler) CompleteProject(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.CompleteProject(c.Request().Context(), userID, projectID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}

type cancelProjectRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *ProjectHandler) CancelProject(c echo.Context) error {
	projectID := c.Param("id")
	if projectID == "" {
		return response.Error(c, errors.BadRequest("Project ID is required", nil))
	}

	var req cancelProjectRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	project, err := h.projectUseCase.CancelProject(c.Request().Context(), userID, projectID, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, project)
}
