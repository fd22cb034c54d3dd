package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ezmeo/wheel-backend/api/routes"
	"github.com/ezmeo/wheel-backend/internal/config"
	"github.com/ezmeo/wheel-backend/internal/handlers"
	"github.com/ezmeo/wheel-backend/internal/repositories"
	mongorepo "github.com/ezmeo/wheel-backend/internal/repositories/mongodb"
	"github.com/ezmeo/wheel-backend/internal/services"
	"github.com/ezmeo/wheel-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndex()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		slog.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	var configRepo repositories.WheelConfigRepository = mongorepo.NewWheelConfigRepository(db)
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var spinRepo repositories.SpinRepository = mongorepo.NewSpinRepository(db)
	var couponRepo repositories.CouponRepository = mongorepo.NewCouponRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// Services
	eligibilityService := services.NewEligibilityService(spinRepo, nil)
	couponService := services.NewCouponService(couponRepo, cfg)
	wheelService := services.NewWheelService(configRepo, prizeRepo, cfg)
	spinService := services.NewSpinService(configRepo, prizeRepo, spinRepo, eligibilityService, couponService, cfg, nil)
	authService := services.NewAuthService(adminRepo, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		WheelHandler:      handlers.NewWheelHandler(wheelService, spinService),
		AdminWheelHandler: handlers.NewAdminWheelHandler(wheelService, spinService, couponService),
		AuthHandler:       handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}
