package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutoria_backend/internal/config"
	"tutoria_backend/internal/controller"
	"tutoria_backend/internal/repository"
	"tutoria_backend/internal/service"
	"tutoria_backend/pkg/configwatcher"
	"tutoria_backend/pkg/database"
	"tutoria_backend/pkg/logger"
	"tutoria_backend/pkg/monitoring"
	"tutoria_backend/pkg/security"
	"tutoria_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	catalog    *repository.CatalogRepository
	diagnostic *repository.DiagnosticRepository
	completion *repository.CompletionRepository
}

type services struct {
	auth       *service.AuthService
	catalog    *service.CatalogService
	diagnostic *service.DiagnosticService
	progress   *service.ProgressService
}

type controllers struct {
	auth       *controller.AuthController
	catalog    *controller.CatalogController
	diagnostic *controller.DiagnosticController
	progress   *controller.ProgressController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		diagnostic: repository.NewDiagnosticRepository(db),
		completion: repository.NewCompletionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	return &services{
		auth:       service.NewAuthService(repos.user, cfg),
		catalog:    service.NewCatalogService(repos.catalog),
		diagnostic: service.NewDiagnosticService(repos.diagnostic),
		progress:   service.NewProgressService(repos.completion, repos.catalog, rdb),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		catalog:    controller.NewCatalogController(s.catalog),
		diagnostic: controller.NewDiagnosticController(s.diagnostic),
		progress:   controller.NewProgressController(s.progress),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// Abandoned diagnostic sessions only live in memory; sweep them.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if pruned := s.diagnostic.PruneSessions(); pruned > 0 {
				logger.Log.Info("pruned idle diagnostic sessions", zap.Int("count", pruned))
			}
		}
	}()

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("config reloaded", zap.String("mode", newCfg.Server.Mode))
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tutoria-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	if mode == "release" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
