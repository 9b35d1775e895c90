package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayushmaan100/Smart-content-finder/internal/config"
	"github.com/ayushmaan100/Smart-content-finder/internal/database"
	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/metrics"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/objectstore"
	pkgredis "github.com/ayushmaan100/Smart-content-finder/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *gorm.DB
	redis   *pkgredis.Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if url := strings.TrimSpace(cfg.Redis.URL); url != "" {
		rc, err = pkgredis.Connect(url)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	var archiver *objectstore.S3Uploader
	if cfg.Storage.S3.Enable {
		archiver, err = objectstore.NewS3Uploader(cfg.Storage.S3)
		if err != nil {
			return nil, fmt.Errorf("object storage: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	var m *metrics.Metrics
	if cfg.Metrics.Enable {
		m = metrics.New()
		router.Use(middleware.Metrics(m))
	}
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, db: db, redis: rc, metrics: m, logger: logger}
	app.registerRoutes(archiver)

	if len(cfg.AI.Providers) == 0 {
		logger.Warn("no AI provider configured; summarize routes will fail until one is set")
	}
	return app, nil
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	out := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		out.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		out.AllowOriginFunc = func(origin string) bool { return true }
	}
	return out
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases pooled connections.
func (a *App) Shutdown() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close failed", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

var processStart = time.Now()
