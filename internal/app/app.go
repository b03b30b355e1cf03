package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"returnit_backend/internal/auth"
	"returnit_backend/internal/config"
	"returnit_backend/internal/email"
	"returnit_backend/internal/handlers"
	"returnit_backend/internal/logger"
	"returnit_backend/internal/middleware"
	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/routes"
	"returnit_backend/internal/services"
	"returnit_backend/internal/similarity"
	"returnit_backend/internal/storage"
	"returnit_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	logger.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Postgres unavailable", "error", err)
	}
	if err := gormDB.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Postgres connected")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Connecting to MongoDB...", "uri", cfg.Mongo.URI)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", "error", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB unavailable", "error", err)
	}
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	logger.Info("MongoDB connected", "database", cfg.Mongo.Database)

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, similarity scores will not be cached", "error", err)
			rdb = nil
		} else {
			logger.Info("Redis connected", "addr", cfg.Redis.Addr)
		}
	}

	ginRouter := SetupRouter(cfg, gormDB, mongoDB, rdb)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, mongoDB *mongo.Database, rdb *redis.Client) *gin.Engine {
	storageInstance, err := storage.New(context.Background(), storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
		S3: storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
			BaseURL:   cfg.Storage.BaseURL,
		},
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	scorer := buildScorer(cfg, rdb)

	sender, err := email.NewSMTPSender(email.Config{
		SMTPHost:  cfg.Email.SMTPHost,
		SMTPPort:  cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email sender", "error", err)
	}

	userRepo := repositories.NewUserRepository()
	itemRepo := repositories.NewItemRepository(mongoDB)

	if err := userRepo.CleanExpiredRefreshTokens(gormDB); err != nil {
		logger.Warn("Failed to clean expired refresh tokens", "error", err)
	}

	authService := services.NewAuthService(userRepo)
	itemService := services.NewItemService(itemRepo)
	matchingService := services.NewMatchingService(itemRepo, scorer, services.MatchingOptions{
		Concurrency: cfg.Matching.Concurrency,
		RetryFailed: cfg.Similarity.RetryFailed,
	})
	nearbyService := services.NewNearbyService(itemRepo)
	contactService := services.NewContactService(userRepo, sender)
	uploadService := services.NewUploadService(storageInstance, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, authService),
		ItemHandler:    handlers.NewItemHandler(baseHandler, itemService),
		MatchHandler:   handlers.NewMatchHandler(baseHandler, matchingService),
		NearbyHandler:  handlers.NewNearbyHandler(baseHandler, nearbyService),
		ContactHandler: handlers.NewContactHandler(baseHandler, contactService),
		UploadHandler:  handlers.NewUploadHandler(baseHandler, uploadService),
	}

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	// Local storage keeps files on disk, so the app serves them itself.
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		ginRouter.Static("/api/v1/files", cfg.Storage.BasePath)
	}

	return ginRouter
}

// buildScorer picks the similarity backend from config and wraps it in the
// Redis cache when one is available.
func buildScorer(cfg *config.Config, rdb *redis.Client) similarity.Scorer {
	var scorer similarity.Scorer

	switch cfg.Similarity.Provider {
	case "openai":
		scorer = similarity.NewOpenAIScorer(similarity.OpenAIConfig{
			APIKey: cfg.Similarity.APIKey,
			Model:  cfg.Similarity.Model,
		})
	default:
		scorer = similarity.NewHuggingFaceScorer(similarity.HuggingFaceConfig{
			APIURL:  cfg.Similarity.APIURL,
			APIKey:  cfg.Similarity.APIKey,
			Timeout: cfg.SimilarityTimeout(),
		})
	}
	logger.Info("Similarity scorer initialized", "provider", cfg.Similarity.Provider)

	if rdb != nil {
		return similarity.NewCachedScorer(scorer, rdb, cfg.SimilarityCacheTTL())
	}
	return scorer
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
