package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayushmaan100/Smart-content-finder/internal/middleware"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/auth"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/ingest/pdf"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/ingest/youtube"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/processing/ai"
	"github.com/ayushmaan100/Smart-content-finder/internal/modules/summary"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/identity"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/objectstore"
	"github.com/ayushmaan100/Smart-content-finder/internal/pkg/response"
)

func (a *App) registerRoutes(archiver *objectstore.S3Uploader) {
	r := a.router
	cfg := a.cfg

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	verifier := identity.New(cfg.Auth.SupabaseURL, cfg.Auth.AnonKey, cfg.Auth.JWTSecret, cfg.AuthTimeout())
	authMW := middleware.Auth(verifier)

	var limitMW []gin.HandlerFunc
	if cfg.RateLimit.Enable {
		var limiter middleware.Limiter
		if a.redis != nil {
			limiter = middleware.NewRedisLimiter(a.redis.Raw(), cfg.RateLimit.Max, cfg.RateLimit.Window)
		} else {
			limiter = middleware.NewLocalLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)
		}
		limitMW = append(limitMW, middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}

	aiSvc := ai.NewService(cfg.AI, a.metrics, a.logger)
	summarySvc := summary.NewService(a.db)

	root := r.Group("")
	root.GET("/", func(c *gin.Context) {
		c.PureJSON(http.StatusOK, gin.H{
			"name":    "smart-content-finder",
			"version": "1.0.0",
			"env":     cfg.Env,
			"uptime":  humanizeDuration(time.Since(processStart)),
		})
	})
	root.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	if a.metrics != nil {
		root.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}

	auth.NewHandler().RegisterRoutes(root, authMW)

	// A nil *S3Uploader must not become a non-nil Archiver interface.
	var pdfArchiver pdf.Archiver
	if archiver != nil {
		pdfArchiver = archiver
	}
	pdf.NewHandler(aiSvc, summarySvc, pdfArchiver, cfg.MaxPDFBytes(), a.metrics, a.logger).
		RegisterRoutes(root, authMW, limitMW...)

	transcripts := youtube.NewCaptionFetcher(cfg.YouTube.Languages, cfg.YouTube.Timeout)
	youtube.NewHandler(transcripts, aiSvc, a.metrics).RegisterRoutes(root, limitMW...)

	summary.NewHandler(summarySvc, aiSvc).RegisterRoutes(root, authMW)
}
