package handler

import (
	"skillswap/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	serviceHandler  *ServiceHandler
	matchHandler    *MatchHandler
	proposalHandler *ProposalHandler
	projectHandler  *ProjectHandler
	reviewHandler   *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	matcherUseCase *usecase.MatcherUseCase,
	proposalUseCase *usecase.ProposalUseCase,
	projectUseCase *usecase.ProjectUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	serviceHandler = NewServiceHandler(catalogUseCase)
	matchHandler = NewMatchHandler(matcherUseCase)
	proposalHandler = NewProposalHandler(proposalUseCase)
	projectHandler = NewProjectHandler(projectUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetServiceHandler() *ServiceHandler {
	return serviceHandler
}

func GetMatchHandler() *MatchHandler {
	return matchHandler
}

func GetProposalHandler() *ProposalHandler {
	return proposalHandler
}

func GetProjectHandler() *ProjectHandler {
	return projectHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
