package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creature-server/internal/ai"
	"creature-server/internal/config"
	"creature-server/internal/database"
	"creature-server/internal/handler"
	"creature-server/internal/logger"
	"creature-server/internal/middleware"
	"creature-server/internal/pdf"
	"creature-server/internal/repository"
	"creature-server/internal/service"
	"creature-server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbPool, err := database.Connect(ctx, cfg, zapLogger)
	cancel()
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()
	zapLogger.Info("Connected to PostgreSQL")

	if err := database.ApplyMigrations(dbPool); err != nil {
		zapLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	zapLogger.Info("Database migrations applied")

	imageStore, err := storage.NewS3ImageStore(context.Background(), storage.Config{
		Endpoint:      cfg.StorageEndpoint,
		Region:        cfg.StorageRegion,
		AccessKey:     cfg.StorageAccessKey,
		SecretKey:     cfg.StorageSecretKey,
		Bucket:        cfg.StorageBucket,
		PublicBaseURL: cfg.StoragePublicBaseURL,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	aiClient := ai.NewClient(ai.Config{
		APIKey:     cfg.AIAPIKey,
		BaseURL:    cfg.AIBaseURL,
		TextModel:  cfg.AITextModel,
		ImageModel: cfg.AIImageModel,
		Timeout:    cfg.AITimeout,
	}, zapLogger)

	creatureRepo := repository.NewPgCreatureRepository(dbPool, zapLogger)
	storybookRepo := repository.NewPgStorybookRepository(dbPool, zapLogger)

	generationService := service.NewGenerationService(aiClient, zapLogger)
	suggestionService := service.NewSuggestionService(aiClient, zapLogger)
	creatureService := service.NewCreatureService(creatureRepo, imageStore, zapLogger)
	storybookService := service.NewStorybookService(
		storybookRepo, creatureRepo, imageStore, aiClient,
		cfg.GenerateCovers, cfg.CoverTimeout, zapLogger,
	)
	cleanupService := service.NewCleanupService(creatureRepo, imageStore, zapLogger)
	exporter := pdf.NewExporter(cfg.SiteURL, zapLogger)

	h := handler.NewHandler(
		generationService,
		suggestionService,
		creatureService,
		storybookService,
		cleanupService,
		exporter,
		cfg.AdminSecretKey,
		zapLogger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.ZapLogger(zapLogger))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	prom := ginprometheus.NewPrometheus("creature_server")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
