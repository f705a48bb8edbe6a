package handler

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/domain/entity"
	"skillswap/internal/usecase"
	"skillswap/pkg/errors"
	"skillswap/pkg/response"
	"skillswap/pkg/utils"
)

type ServiceHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewServiceHandler(catalogUseCase *usecase.CatalogUseCase) *ServiceHandler {
	return &ServiceHandler{
		catalogUseCase: catalogUseCase,
	}
}

type createServiceRequest struct {
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description" validate:"required"`
	Category          string   `json:"category" validate:"required"`
	Kind              string   `json:"kind" validate:"required,oneof=offer need"`
	EstimatedValue    float64  `json:"estimated_value,omitempty"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
	Skills            []string `json:"skills,omitempty"`
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	service, err := h.catalogUseCase.CreateService(c.Request().Context(), ownerID, usecase.CreateServiceInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		Kind:              entity.ServiceKind(req.Kind),
		EstimatedValue:    req.EstimatedValue,
		EstimatedDuration: req.EstimatedDuration,
		Skills:            req.Skills,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, service)
}

type updateServiceRequest struct {
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	Category          string   `json:"category,omitempty"`
	EstimatedValue    *float64 `json:"estimated_value,omitempty"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
	Skills            []string `json:"skills,omitempty"`
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	serviceID := c.Param("id")
	if serviceID == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	service, err := h.catalogUseCase.UpdateService(c.Request().Context(), serviceID, ownerID, usecase.UpdateServiceInput{
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		EstimatedValue:    req.EstimatedValue,
		EstimatedDuration: req.EstimatedDuration,
		Skills:            req.Skills,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) DeactivateService(c echo.Context) error {
	serviceID := c.Param("id")
	if serviceID == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	ownerID := c.Get("uid").(string)

	if err := h.catalogUseCase.DeactivateService(c.Request().Context(), serviceID, ownerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": serviceID, "status": "inactive"})
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	serviceID := c.Param("id")
	if serviceID == "" {
		return response.Error(c, errors.BadRequest("Service ID is required", nil))
	}

	service, err := h.catalogUseCase.GetService(c.Request().Context(), serviceID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, service)
}

func (h *ServiceHandler) ListMyServices(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	services, err := h.catalogUseCase.ListByUser(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, services)
}

func (h *ServiceHandler) ListUserServices(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	services, err := h.catalogUseCase.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, services)
}

// ListServices browses the active catalog, optionally filtered by category or
// kind, paginated.
func (h *ServiceHandler) ListServices(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		services []*entity.Service
		err      error
	)

	switch {
	case c.QueryParam("q") != "":
		services, err = h.catalogUseCase.Search(ctx, c.QueryParam("q"))
	case c.QueryParam("category") != "":
		services, err = h.catalogUseCase.ListByCategory(ctx, c.QueryParam("category"))
	case c.QueryParam("kind") != "":
		services, err = h.catalogUseCase.ListByKind(ctx, entity.ServiceKind(c.QueryParam("kind")))
	default:
		services, err = h.catalogUseCase.Search(ctx, "")
	}
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)

	total := int64(len(services))
	start := params.Offset
	if start > len(services) {
		start = len(services)
	}
	end := start + params.PageSize
	if end > len(services) {
		end = len(services)
	}

	return response.Paginated(c, services[start:end], total, params.Page, params.PageSize)
}
