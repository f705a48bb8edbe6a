package handler

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/usecase"
	"skillswap/pkg/response"
)

type MatchHandler struct {
	matcherUseCase *usecase.MatcherUseCase
}

func NewMatchHandler(matcherUseCase *usecase.MatcherUseCase) *MatchHandler {
	return &MatchHandler{
		matcherUseCase: matcherUseCase,
	}
}

func (h *MatchHandler) FindOpportunities(c echo.Context) error {
	userID := c.Get("uid").(string)

	opportunities, err := h.matcherUseCase.FindOpportunities(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, opportunities)
}
