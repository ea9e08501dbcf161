package app

import (
	"context"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/controller"
	"interview_prep_backend/internal/interview"
	"interview_prep_backend/internal/repository"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/configwatcher"
	"interview_prep_backend/pkg/database"
	"interview_prep_backend/pkg/logger"
	"interview_prep_backend/pkg/monitoring"
	"interview_prep_backend/pkg/security"
	"interview_prep_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	Store     *repository.Store

	services        *services
	cors            *security.CORSPolicy
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	storage   *service.StorageService
	activity  *service.ActivityService
	stats     *service.StatsService
	progress  *service.ProgressService
	dashboard *service.DashboardService
	question  *service.QuestionService
	auth      *service.AuthService
	user      *service.UserService
	interview *service.InterviewService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	question  *controller.QuestionController
	upload    *controller.UploadController
	resume    *controller.ResumeController
	dashboard *controller.DashboardController
	interview *controller.InterviewController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initStore 按 store.mode 选定一次持久化实现
func (a *App) initStore(cfg *config.Config) (*repository.Store, error) {
	if cfg.Store.Mode == util.StoreMemory {
		logger.Log.Warn("Using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}
	a.DB = db
	return repository.NewGormStore(db), nil
}

func (a *App) initRedis(cfg *config.Config) {
	if !cfg.Redis.Enabled {
		return
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dashboard stats cache disabled", zap.Error(err))
		return
	}
	a.Redis = rdb
}

func (a *App) initServices(store *repository.Store, cfg *config.Config) *services {
	s := &services{}
	loc := cfg.Server.Location()
	cache := service.NewStatsCache(a.Redis, time.Duration(cfg.Redis.StatsTTLSeconds)*time.Second)

	s.storage = service.NewStorageService(cfg)
	s.activity = service.NewActivityService(store, cache, loc)
	s.stats = service.NewStatsService(store, cache)
	s.progress = service.NewProgressService(store, s.activity, s.stats, cfg.Rewards.ResumeCoins, cfg.Rewards.InterviewCoinsPerPoint)
	s.dashboard = service.NewDashboardService(store, cache, loc)
	s.question = service.NewQuestionService(store, s.progress)
	s.auth = service.NewAuthService(store, cfg)
	s.user = service.NewUserService(store, s.storage)
	s.interview = service.NewInterviewService(interview.DefaultBank(), s.progress, cfg.Interview)

	return s
}

func (a *App) initControllers(s *services, store *repository.Store) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		question:  controller.NewQuestionController(s.question),
		upload:    controller.NewUploadController(s.storage),
		resume:    controller.NewResumeController(s.progress),
		dashboard: controller.NewDashboardController(s.dashboard, s.progress),
		interview: controller.NewInterviewController(s.interview),
		health:    controller.NewHealthController(store, a.Config.Store.Mode),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.cors = security.NewCORSPolicy(cfg.CORS.AllowedOrigins)
	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)

	router.Use(a.cors.Middleware())
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders 只热更新可安全替换的配置
func (a *App) registerReloaders() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.limiter.SetLimit(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.cors.SetOrigins(cfg.CORS.AllowedOrigins)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.services.interview.UpdateConfig(cfg.Interview)
	})
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	app := &App{
		Config:    cfg,
		ConfigDir: configDir,
	}

	store, err := app.initStore(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}
	app.Store = store

	// 迁移在 InitDB 中完成
	if cfg.MigrateOnly {
		return app
	}

	app.initRedis(cfg)

	services := app.initServices(store, cfg)
	app.services = services
	controllers := app.initControllers(services, store)

	if err := services.question.SeedDefaults(context.Background()); err != nil {
		logger.Log.Error("Failed to seed questions", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("interview-prep-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.setupMiddlewares(router, cfg)
	app.registerReloaders()
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	go a.limiter.Cleanup(ctx.Done())
	go func() {
		configFile := filepath.Join(a.ConfigDir, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, configFile, a.reloadConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port), zap.String("store", a.Config.Store.Mode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
