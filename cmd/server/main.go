package main // Entry point package

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vitalog/measurement-service/internal/config"
	"github.com/vitalog/measurement-service/internal/database"
	"github.com/vitalog/measurement-service/internal/flash"
	"github.com/vitalog/measurement-service/internal/handler"
	"github.com/vitalog/measurement-service/internal/queue"
	"github.com/vitalog/measurement-service/internal/repository"
	"github.com/vitalog/measurement-service/internal/router"
	"github.com/vitalog/measurement-service/pkg/logger"
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("no .env file found, using environment variables from OS")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Sugar.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Sugar.Fatalf("schema migration failed: %v", err)
	}

	// Redis backs flash notifications and rate limiting.  A nil client is
	// tolerated everywhere; the features degrade instead of blocking startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Sugar.Warn("redis unavailable; flash falls back to cookies, rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	measurements := repository.NewMeasurementRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	measurementHandler := handler.NewMeasurementHandler(measurements, users, flash.NewStore(rdb))

	// Audit trail consumer; reconnects on its own, never blocks startup.
	go queue.StartMeasurementConsumer()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, authHandler, measurementHandler, cfg, rdb)

	addr := ":" + cfg.Port
	logger.Sugar.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Sugar.Fatal(err)
	}
}
