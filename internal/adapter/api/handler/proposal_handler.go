package handler

import (
	"github.com/labstack/echo/v4"

	"skillswap/internal/domain/entity"
	"skillswap/internal/usecase"
	"skillswap/pkg/errors"
	"skillswap/pkg/response"
)

type ProposalHandler struct {
	proposalUseCase *usecase.ProposalUseCase
}

func NewProposalHandler(proposalUseCase *usecase.ProposalUseCase) *ProposalHandler {
	return &ProposalHandler{
		proposalUseCase: proposalUseCase,
	}
}

type createProposalRequest struct {
	RecipientID        string `json:"recipient_id" validate:"required"`
	ProposerServiceID  string `json:"proposer_service_id" validate:"required"`
	RecipientServiceID string `json:"recipient_service_id" validate:"required"`
	Message            string `json:"message,omitempty"`
}

func (h *ProposalHandler) CreateProposal(c echo.Context) error {
	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	proposerID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.CreateProposal(c.Request().Context(), proposerID, usecase.CreateProposalInput{
		RecipientID:        req.RecipientID,
		ProposerServiceID:  req.ProposerServiceID,
		RecipientServiceID: req.RecipientServiceID,
		Message:            req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, proposal)
}

type respondProposalRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

func (h *ProposalHandler) RespondToProposal(c echo.Context) error {
	proposalID := c.Param("id")
	if proposalID == "" {
		return response.Error(c, errors.BadRequest("Proposal ID is required", nil))
	}

	var req respondProposalRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.RespondToProposal(c.Request().Context(), userID, proposalID, req.Decision)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposal)
}

func (h *ProposalHandler) GetProposal(c echo.Context) error {
	proposalID := c.Param("id")
	if proposalID == "" {
		return response.Error(c, errors.BadRequest("Proposal ID is required", nil))
	}

	userID := c.Get("uid").(string)

	proposal, err := h.proposalUseCase.GetProposal(c.Request().Context(), userID, proposalID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposal)
}

func (h *ProposalHandler) ListProposals(c echo.Context) error {
	userID := c.Get("uid").(string)
	role := c.QueryParam("role")
	status := entity.ProposalStatus(c.QueryParam("status"))

	proposals, err := h.proposalUseCase.ListProposals(c.Request().Context(), userID, role, status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proposals)
}
