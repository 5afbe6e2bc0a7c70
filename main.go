package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saamdocs/docgen-service/handlers"
	"github.com/saamdocs/docgen-service/internal/cache"
	"github.com/saamdocs/docgen-service/internal/config"
	"github.com/saamdocs/docgen-service/internal/database"
	"github.com/saamdocs/docgen-service/internal/document/repository"
	"github.com/saamdocs/docgen-service/internal/document/service"
	"github.com/saamdocs/docgen-service/internal/provider"
	"github.com/saamdocs/docgen-service/internal/storage"
	"github.com/saamdocs/docgen-service/pkg/logger"
	"github.com/saamdocs/docgen-service/pkg/metrics"
	"github.com/saamdocs/docgen-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: db=%v redis=%v google_stub=%v testing=%v",
		cfg.Database.URL != "", cfg.Redis.Host != "", cfg.Google.SkipAuth, cfg.Testing)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so both the cache and the rate limiter can use it.
	// Test mode skips Redis entirely and caches in process.
	var redisClient *redis.Client
	var responseCache cache.Cache
	if !cfg.Testing && cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s), caching in process: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			responseCache = cache.NewRedis(redisClient, "cache:")
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if responseCache == nil {
		responseCache = cache.NewMemory()
		logger.Infof("using in-process cache")
	}

	// Optional global rate limiter
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Persistence: Postgres in production, ephemeral SQLite in test mode.
	var db *gorm.DB
	if cfg.Testing {
		db, err = database.ConnectEphemeral()
	} else {
		if cfg.Database.URL == "" {
			logger.Fatalf("DATABASE_URL is required outside test mode")
		}
		db, err = database.Connect(cfg.Database.URL)
	}
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}

	// Provider selection is configuration-driven: stub when Google auth is
	// skipped or in test mode, otherwise the real client.
	var docProvider provider.Provider
	providerMode := "google"
	if cfg.Google.SkipAuth || cfg.Testing {
		docProvider = provider.NewStub()
		providerMode = "stub"
		logger.Infof("using stub document provider")
	} else {
		gc, err := provider.NewGoogleClient(ctx, cfg.Google.CredentialsPath)
		if err != nil {
			logger.Fatalf("failed to initialize Google client: %v", err)
		}
		docProvider = gc
	}

	opts := []service.Option{service.WithListTTL(cfg.Cache.TTL)}
	if cfg.Archive.Endpoint != "" {
		arch, err := storage.NewArchive(cfg.Archive)
		if err != nil {
			logger.Warnf("content archive disabled: %v", err)
		} else {
			opts = append(opts, service.WithArchive(arch))
			logger.Infof("archiving rendered content to bucket %q", cfg.Archive.Bucket)
		}
	}

	svc := service.New(repository.New(db), docProvider, responseCache, opts...)

	// Optional JWT guard on mutating endpoints
	var guard gin.HandlerFunc
	if cfg.JWT.Secret != "" {
		guard = middleware.JWTAuthMiddleware(cfg.JWT.Secret)
		logger.Infof("JWT guard enabled on mutating endpoints")
	}

	handlers.NewDocumentHandler(svc, cfg.Server.Version).Register(r, guard)
	handlers.RegisterSwagger(r)

	// readiness endpoint — 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		sqlDB, derr := db.DB()
		if derr != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			deps["database"] = false
			ready = false
		} else {
			deps["database"] = true
		}

		if redisClient != nil {
			deps["redis"] = redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			// in-process cache has no external dependency
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "provider": providerMode, "uptime": time.Since(startTime).String()})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting document service on %s (env=%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
