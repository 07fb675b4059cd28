package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/yourusername/intent-protocol/engine-service/internal/api/handlers"
	"github.com/yourusername/intent-protocol/engine-service/internal/config"
	"github.com/yourusername/intent-protocol/engine-service/internal/engine"
	"github.com/yourusername/intent-protocol/engine-service/internal/models"
	"github.com/yourusername/intent-protocol/engine-service/internal/reputation"
	"github.com/yourusername/intent-protocol/engine-service/internal/repository"
	"github.com/yourusername/intent-protocol/engine-service/internal/service"
	"github.com/yourusername/intent-protocol/engine-service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Setup(router *gin.Engine, cfg *config.Config) {
	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Initialize components
	repo := repository.NewRankingRepository(db)
	eng := engine.New(engine.Options{
		GasCeiling:      cfg.GasCeiling,
		GasPerCostPoint: cfg.GasPerCostPoint,
	})

	reputationSource := initReputationSource(cfg)

	engineService := service.NewEngineService(eng, repo, reputationSource)

	rankingHandler := handlers.NewRankingHandler(engineService)

	// Health check
	router.GET("/health", rankingHandler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ranking routes
		v1.POST("/rankings/evaluate", rankingHandler.Evaluate)
		v1.GET("/rankings/:intent_id", rankingHandler.GetRanking)
		v1.GET("/rankings/:intent_id/rejections", rankingHandler.GetRejections)

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", rankingHandler.GetStats)
		}
	}
}

func initReputationSource(cfg *config.Config) reputation.Source {
	if !cfg.UseStaticScores && cfg.EthereumRPC != "" && cfg.RegistryContract != "" {
		client, err := reputation.NewRegistryClient(cfg.EthereumRPC, cfg.RegistryContract)
		if err != nil {
			logger.Error("Failed to initialize registry client, falling back to static reputation", zap.Error(err))
		} else {
			logger.Info("Using on-chain reputation registry",
				zap.String("contract", cfg.RegistryContract),
			)
			return client
		}
	}

	logger.Info("Using static reputation source",
		zap.Float64("defaultScore", cfg.DefaultReputation),
	)
	return reputation.NewStaticSource(nil, cfg.DefaultReputation)
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if cfg.DatabaseURL == "" {
		logger.Info("No database URL configured, using in-memory SQLite")
		// Use pure Go SQLite (no CGO required)
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
		}
	} else {
		logger.Info("Connecting to PostgreSQL database")
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.RankingRecord{},
		&models.RejectionRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database initialized successfully")
	return db, nil
}
