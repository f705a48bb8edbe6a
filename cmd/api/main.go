package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"skillswap/internal/adapter/api"
	"skillswap/internal/adapter/api/handler"
	apimiddleware "skillswap/internal/adapter/api/middleware"
	"skillswap/internal/adapter/api/router"
	"skillswap/internal/adapter/repository"
	domainrepo "skillswap/internal/domain/repository"
	"skillswap/internal/infrastructure/firebase"
	"skillswap/internal/infrastructure/ratelimit"
	"skillswap/internal/infrastructure/websocket"
	"skillswap/internal/usecase"
	"skillswap/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	var (
		userRepo     domainrepo.UserRepository
		serviceRepo  domainrepo.ServiceRepository
		proposalRepo domainrepo.ProposalRepository
		projectRepo  domainrepo.ProjectRepository
		reviewRepo   domainrepo.ReviewRepository
	)

	if cfg.StorageDriver == "memory" {
		log.Printf("Using in-memory storage")
		store := repository.NewMemoryStore()
		userRepo = repository.NewMemoryUserRepository(store)
		serviceRepo = repository.NewMemoryServiceRepository(store)
		proposalRepo = repository.NewMemoryProposalRepository(store)
		projectRepo = repository.NewMemoryProjectRepository(store)
		reviewRepo = repository.NewMemoryReviewRepository(store)
	} else {
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer firestoreClient.Close()

		userRepo = repository.NewFirestoreUserRepository(firestoreClient)
		serviceRepo = repository.NewFirestoreServiceRepository(firestoreClient)
		proposalRepo = repository.NewFirestoreProposalRepository(firestoreClient)
		projectRepo = repository.NewFirestoreProjectRepository(firestoreClient)
		reviewRepo = repository.NewFirestoreReviewRepository(firestoreClient)
	}

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	notifier := websocket.NewNotifier(wsManager)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	catalogUseCase := usecase.NewCatalogUseCase(serviceRepo, userRepo)
	matcherUseCase := usecase.NewMatcherUseCase(serviceRepo, userRepo)
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo, serviceRepo, userRepo, notifier)
	projectUseCase := usecase.NewProjectUseCase(projectRepo, proposalRepo, userRepo, notifier)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, projectRepo, proposalRepo, userRepo, notifier)

	handler.Setup(authUseCase, userUseCase, catalogUseCase, matcherUseCase, proposalUseCase, projectUseCase, reviewUseCase)

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	handler.SetupWebSocket(wsManager, authMiddleware, ratelimit.NewRateLimiter(cfg.WSRateLimit))

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
