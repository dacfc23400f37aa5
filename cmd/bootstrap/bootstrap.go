package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-first-server/config"
	deliveryHttp "health-first-server/internal/delivery/http"
	"health-first-server/internal/delivery/http/handler"
	"health-first-server/internal/delivery/http/middleware"
	"health-first-server/internal/infrastructure/cache"
	"health-first-server/internal/infrastructure/database"
	"health-first-server/internal/repository"
	"health-first-server/internal/service"
	"health-first-server/internal/usecase"
	"health-first-server/pkg/jwt"
	"health-first-server/pkg/metrics"
	"health-first-server/pkg/password"
	"health-first-server/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	hasher := password.NewBcryptHasher(cfg.Password.BcryptCost, cfg.Password.MaxConcurrentHashes)
	customValidator := validator.NewValidator()
	appMetrics := metrics.NewMetrics()

	// Repositories
	providerRepo := repository.NewProviderRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	notificationService := service.NewRedisNotificationService(redisClient, log, cfg.Notification.Stream)

	// Usecases
	providerUsecase := usecase.NewProviderUsecase(log, providerRepo, hasher, jwtService, customValidator, auditService, notificationService)

	// Handlers
	providerHandler := handler.NewProviderHandler(log, providerUsecase, customValidator, appMetrics)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtService, providerRepo)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)
	metricsMiddleware := middleware.NewMetricsMiddleware(appMetrics)

	router := deliveryHttp.NewRouter(providerHandler, authMiddleware, corsMiddleware, loggerMiddleware, recoveryMiddleware, metricsMiddleware, appMetrics)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database and Redis connections
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
