package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"life-counter-api/handlers"
	"life-counter-api/middleware"
	"life-counter-api/models"
	"life-counter-api/services"
	"life-counter-api/storage"
	"life-counter-api/utils/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&models.Game{},
		&models.Match{},
		&models.Player{},
	); err != nil {
		logger.Log.Fatal("failed to migrate database: ", err)
	}

	store := storage.NewGormStore(db)
	matchService := services.NewMatchService(store, logger.Log)
	playerService := services.NewPlayerService(store, logger.Log, matchService)
	gameService := services.NewGameService(store, logger.Log, matchService)

	sweepInterval := 10 * time.Minute
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Log.Fatal("invalid SWEEP_INTERVAL: ", err)
		}
		sweepInterval = parsed
	}
	sched, err := matchService.StartSweeper(sweepInterval)
	if err != nil {
		logger.Log.Fatal("failed to start sweeper: ", err)
	}

	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Use(cors.New())

	handlers.SetupGameRoutes(app, gameService)
	handlers.SetupPlayerRoutes(app, playerService, matchService)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":5200"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(addr); err != nil {
			logger.Errorf("server error: %v", err)
		}
	}()

	logger.Infof("server running on %s", addr)

	<-ctx.Done()
	logger.Info("shutting down server...")
	_ = sched.Shutdown()
	_ = app.Shutdown()
}
