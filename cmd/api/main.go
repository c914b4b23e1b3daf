package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"printhub/internal/auth"
	"printhub/internal/config"
	"printhub/internal/database"
	"printhub/internal/database/migration"
	handlers "printhub/internal/http/handler"
	"printhub/internal/http/middleware"
	"printhub/internal/logging"
	"printhub/internal/notify"
	"printhub/internal/otel"
	"printhub/internal/repository/postgres"
	"printhub/internal/service"
	"printhub/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal("failed to initialize object storage", zap.Error(err))
	}

	notifier, err := notify.NewSMTP(cfg.SMTP)
	if err != nil {
		logger.Fatal("failed to initialize mail notifier", zap.Error(err))
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)

	userRepo := postgres.NewUserPostgres(db)
	printerRepo := postgres.NewPrinterPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)

	svcs := handlers.Services{
		Documents: service.NewDocumentService(objStore, docRepo, userRepo, printerRepo, notifier, logger),
		Users:     service.NewUserService(userRepo, jwt, notifier, logger),
		Printers:  service.NewPrinterService(printerRepo, jwt, notifier, logger),
		Passwords: service.NewPasswordService(userRepo, printerRepo, notifier, cfg.BaseURL, logger),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, jwt, logger, svcs)

	addr := ":" + cfg.Port
	logger.Info("server_starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
