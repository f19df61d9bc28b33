package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/config"
	httpapi "github.com/hsinyu/travelplan/internal/interfaces/http"
	"github.com/hsinyu/travelplan/internal/repository"
	"github.com/hsinyu/travelplan/internal/service"
	"github.com/hsinyu/travelplan/pkg/database"
	"github.com/hsinyu/travelplan/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting travelplan server", zap.Int("port", cfg.Server.Port))

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create data directory", zap.Error(err))
		}
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	planRepo := repository.NewPlanRepository(db.DB, logger)
	budgetItemRepo := repository.NewBudgetItemRepository(db.DB, logger)
	budgetSummaryRepo := repository.NewBudgetSummaryRepository(db.DB, logger)
	accommodationRepo := repository.NewAccommodationRepository(db.DB, logger)
	tripItemRepo := repository.NewTripItemRepository(db.DB, logger)
	travelInfoRepo := repository.NewTravelInfoRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, logger)
	services := httpapi.Services{
		Auth:           service.NewAuthService(userRepo, tokens, logger),
		Plans:          service.NewPlanService(planRepo, logger),
		Budgets:        service.NewBudgetService(db, planRepo, budgetItemRepo, budgetSummaryRepo, logger),
		Accommodations: service.NewAccommodationService(db, planRepo, accommodationRepo, logger),
		TripItems:      service.NewTripItemService(db, planRepo, tripItemRepo, logger),
		TravelInfo:     service.NewTravelInfoService(planRepo, travelInfoRepo, logger),
		Users:          userService,
	}

	if err := userService.EnsureBootstrapAdmin(context.Background(),
		cfg.Auth.BootstrapAdminUser, cfg.Auth.BootstrapAdminPass); err != nil {
		logger.Fatal("Failed to seed bootstrap admin", zap.Error(err))
	}

	server := httpapi.NewServer(httpapi.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, services, tokens, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server exited")
}
