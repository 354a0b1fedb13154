package app

import (
	"careerquest_portal/internal/config"
	"careerquest_portal/internal/controller"
	"careerquest_portal/internal/fallback"
	"careerquest_portal/internal/oracle"
	"careerquest_portal/internal/repository"
	"careerquest_portal/internal/service"
	"careerquest_portal/pkg/configwatcher"
	"careerquest_portal/pkg/database"
	"careerquest_portal/pkg/logger"
	"careerquest_portal/pkg/monitoring"
	"careerquest_portal/pkg/security"
	"careerquest_portal/pkg/tracing"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "careerquest-portal"

type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Oracle *oracle.Client

	cfgMu           sync.RWMutex
	cfg             *config.Config
	services        *services
	tracer          *sdktrace.TracerProvider
	origins         *security.OriginWhitelist
	configCallbacks []func(*config.Config)

	// ctx 覆盖后台任务的生命周期，Run 退出时取消
	ctx    context.Context
	cancel context.CancelFunc
}

type services struct {
	quest *service.QuestService
}

type controllers struct {
	health  *controller.HealthController
	session *controller.SessionController
	quest   *controller.QuestController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// Config 当前生效的配置，热加载后会被替换
func (a *App) Config() *config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return a.cfg
}

func (a *App) reload(cfg *config.Config) {
	cfg.Path = a.Config().Path
	a.cfgMu.Lock()
	a.cfg = cfg
	a.cfgMu.Unlock()
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initStore(cfg *config.Config) (repository.SessionStore, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.Redis = rdb
		return repository.NewRedisSessionRepository(rdb), nil
	case config.StoreMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.DB = db
		return repository.NewMySQLSessionRepository(db), nil
	default:
		return repository.NewMemorySessionRepository(), nil
	}
}

func (a *App) initServices(cfg *config.Config, store repository.SessionStore) *services {
	return &services{
		quest: service.NewQuestService(a.Oracle, store, fallback.Default(), cfg),
	}
}

func (a *App) initControllers(s *services, cfg *config.Config) *controllers {
	return &controllers{
		health:  controller.NewHealthController(s.quest),
		session: controller.NewSessionController(s.quest, cfg.Session.CookieName, cfg.Server.Mode == gin.ReleaseMode),
		quest:   controller.NewQuestController(s.quest),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginWhitelist(cfg.CORS.AllowedOrigins)
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(a.configMiddleware())
}

func (a *App) registerCallbacks(s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		logger.SetMode(cfg.Server.Mode)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.Oracle.UpdateTimeouts(cfg.Oracle.RequestTimeout, cfg.Oracle.HealthTimeout)
	})
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.origins.Update(cfg.CORS.AllowedOrigins)
	})
	a.RegisterConfigCallback(s.quest.ApplyConfig)
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	go s.quest.RunJanitor(a.ctx, time.Minute)

	go func() {
		if err := configwatcher.Watch(a.ctx, cfg.Path, a.reload); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	client, err := oracle.NewClient(oracle.Config{
		BaseURL:        cfg.Oracle.BaseURL,
		RequestTimeout: cfg.Oracle.RequestTimeout,
		HealthTimeout:  cfg.Oracle.HealthTimeout,
	})
	if err != nil {
		cancel()
		return nil, err
	}
	app.Oracle = client

	store, err := app.initStore(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	// 监控初始化
	monitoring.Init()

	services := app.initServices(cfg, store)
	app.services = services
	controllers := app.initControllers(services, cfg)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)
	app.registerCallbacks(services)

	logger.Log.Info("Portal initialized",
		zap.String("oracle", cfg.Oracle.BaseURL),
		zap.String("session_store", cfg.Session.Store))

	return app, nil
}

func (a *App) Run() {
	cfg := a.Config()
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: a.Router,
	}

	a.startBackgroundTasks(a.services, cfg)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
