package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/config"
	"currency-converter/internal/handler"
	"currency-converter/internal/middleware"
	"currency-converter/internal/service"
	"currency-converter/internal/session"
	"currency-converter/pkg/cache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "cc:session:"

type Application struct {
	config *config.Config
	router *gin.Engine
	logger *zap.Logger
	store  session.Store
	server *http.Server
}

// New собирает приложение. Ошибка конфигурации (нет ключа API) возвращается сразу,
// до того как сервер начнет принимать запросы.
func New(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	gateway, err := service.NewGateway(cfg.API, logger.Named("gateway"))
	if err != nil {
		return nil, err
	}
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
		logger.Info("Running in RELEASE mode")
	} else if cfg.Server.Mode == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("Running in DEBUG mode")
	}
	store := newSessionStore(cfg, logger)

	app := &Application{
		config: cfg,
		router: gin.New(),
		logger: logger,
		store:  store,
	}
	app.setupMiddleware()
	app.setupRouter(
		handler.NewHealthHandler(store, logger.Named("health")),
		handler.NewCurrencyHandler(gateway, logger.Named("api")),
		handler.NewFormHandler(gateway, store, cfg.Session.TTL, logger.Named("form")),
	)
	logger.Info("Application initialized",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("session_store", cfg.Session.Store),
	)
	return app, nil
}

// newSessionStore: если Redis недоступен, продолжаем с хранилищем в памяти
func newSessionStore(cfg *config.Config, logger *zap.Logger) session.Store {
	if cfg.Session.Store == config.SessionStoreRedis {
		redisClient, err := cache.NewRedisClient(cfg.Redis, sessionKeyPrefix, logger.Named("redis"))
		if err == nil {
			return session.NewRedisStore(redisClient, cfg.Session.TTL)
		}
		logger.Error("Failed to create Redis client, falling back to memory sessions", zap.Error(err))
	}
	return session.NewMemoryStore(cfg.Session.TTL)
}

func (a *Application) setupMiddleware() {
	a.router.Use(middleware.RequestIDMiddleware())
	a.router.Use(middleware.LoggingMiddleware(a.logger.Named("http")))
	a.router.Use(middleware.RecoveryMiddleware(a.logger))
	a.router.Use(middleware.CORSMiddleware())
	a.logger.Debug("Middleware configured")
}

func (a *Application) setupRouter(healthHandler *handler.HealthHandler, currencyHandler *handler.CurrencyHandler, formHandler *handler.FormHandler) {
	a.router.GET("/health", healthHandler.Check)

	apiV1 := a.router.Group("/api/v1")
	apiV1.GET("/convert", currencyHandler.Convert)
	apiV1.GET("/currencies", currencyHandler.Currencies)

	a.router.GET("/", formHandler.Show)
	a.router.POST("/convert", formHandler.Convert)
	a.router.POST("/swap", formHandler.Swap)

	a.logger.Debug("Routes configured",
		zap.String("health", "GET /health"),
		zap.String("convert", "GET /api/v1/convert"),
		zap.String("currencies", "GET /api/v1/currencies"),
		zap.String("form", "GET / , POST /convert, POST /swap"),
	)
}

// Handler - для тестов и встраивания
func (a *Application) Handler() http.Handler {
	return a.router
}

func (a *Application) Run() error {
	a.server = &http.Server{
		Addr:         a.config.Server.Addr(),
		Handler:      a.router,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	// Канал для ошибки сервера
	serverErr := make(chan error, 1)

	// Запускаем сервер в горутине
	go func() {
		a.logger.Info("Server starting",
			zap.String("address", a.server.Addr),
			zap.String("mode", a.config.Server.Mode),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Настраиваем graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	// Ждем либо ошибку сервера, либо сигнал shutdown
	select {
	case err, ok := <-serverErr:
		a.closeStore()
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		return a.Shutdown()
	}
}

// Shutdown корректно останавливает сервер
func (a *Application) Shutdown() error {
	a.logger.Info("Starting graceful shutdown...")

	// Даем серверу 5 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if a.server != nil {
		if err = a.server.Shutdown(ctx); err != nil {
			a.logger.Error("Failed to shutdown HTTP server", zap.Error(err))
			err = fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	a.closeStore()

	a.logger.Info("Server stopped gracefully")
	_ = a.logger.Sync()
	return err
}

func (a *Application) closeStore() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close session store", zap.Error(err))
	}
}
