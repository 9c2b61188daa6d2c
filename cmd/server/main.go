package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stormboard/internal/cache"
	"stormboard/internal/config"
	"stormboard/internal/repository"
	"stormboard/internal/service"
	"stormboard/internal/transport/rest"
	"stormboard/internal/transport/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	sessionRepo := repository.NewSessionRepo(db)
	folderRepo := repository.NewFolderRepo(db)
	participantRepo := repository.NewParticipantRepo(db)
	coAdminRepo := repository.NewCoAdminRepo(db)
	postItRepo := repository.NewPostItRepo(db)
	clusterRepo := repository.NewClusterRepo(db)
	roundRepo := repository.NewRoundRepo(db)
	voteRepo := repository.NewVoteRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	resultsCache := cache.NewResultsCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.FacilitatorUsername, cfg.FacilitatorPassword, cfg.JWTSecret, sessionRepo, coAdminRepo, participantRepo)
	sessionSvc := service.NewSessionService(sessionRepo, roundRepo, voteRepo, participantRepo, sessionCache, resultsCache, authSvc)
	folderSvc := service.NewFolderService(folderRepo, sessionRepo)
	participantSvc := service.NewParticipantService(participantRepo, sessionRepo)
	coAdminSvc := service.NewCoAdminService(coAdminRepo, authSvc)
	postItSvc := service.NewPostItService(postItRepo, clusterRepo, authSvc)
	clusterSvc := service.NewClusterService(clusterRepo, postItRepo, authSvc)
	votingSvc := service.NewVotingService(roundRepo, voteRepo, participantRepo, resultsCache, authSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)
	participantSvc.SetBroadcaster(wsHub)
	coAdminSvc.SetBroadcaster(wsHub)
	postItSvc.SetBroadcaster(wsHub)
	clusterSvc.SetBroadcaster(wsHub)
	votingSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		SessionService:     sessionSvc,
		FolderService:      folderSvc,
		ParticipantService: participantSvc,
		CoAdminService:     coAdminSvc,
		PostItService:      postItSvc,
		ClusterService:     clusterSvc,
		VotingService:      votingSvc,
		WSHub:              wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
