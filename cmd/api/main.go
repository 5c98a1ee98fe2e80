// Package main is the entrypoint for the WorkHive API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/handler"
	"github.com/workhive/workhive/internal/media"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/middleware"
	"github.com/workhive/workhive/internal/repository"
	"github.com/workhive/workhive/internal/server"
	"github.com/workhive/workhive/internal/service"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	mediaStore, err := media.NewStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		logger.Error("failed to initialize media store",
			slog.String("dir", cfg.UploadDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	signer := auth.NewSigner(cfg.TokenSecret, cfg.TokenTTL)

	// Services
	metricsRecorder := metrics.NewInMemory()
	userService := service.NewUserService(repo, signer, metricsRecorder)
	jobService := service.NewJobService(repo, mediaStore, metricsRecorder, logger)
	applicationService := service.NewApplicationService(repo, metricsRecorder)

	// Handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, cacheClient, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	r := setupRouter(routerDeps{
		health:       healthHandler,
		users:        userHandler,
		jobs:         jobHandler,
		applications: applicationHandler,
		metrics:      metricsHandler,
		signer:       signer,
		cache:        cacheClient,
		cfg:          cfg,
		logger:       logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Connections close after in-flight requests drain.
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	health       *handler.HealthHandler
	users        *handler.UserHandler
	jobs         *handler.JobHandler
	applications *handler.ApplicationHandler
	metrics      *handler.MetricsHandler
	signer       *auth.Signer
	cache        *cache.Cache
	cfg          *config.Config
	logger       *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Uploaded media (public, read-only)
	uploadsDir := http.Dir(deps.cfg.UploadDir)
	r.Method(http.MethodGet, media.PublicPath+"/*",
		http.StripPrefix(media.PublicPath+"/", http.FileServer(uploadsDir)))

	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Signer: deps.signer,
		Cache:  deps.cache,
	}

	// Upload routes carry files, so the body cap is higher.
	uploadBodyLimit := int64(media.MaxFilesPerJob)*media.MaxFileSize + deps.cfg.MaxRequestBodySize

	r.Route("/api/v1", func(r chi.Router) {
		// JSON bodies stay small on every route except uploads.
		r.Use(middleware.MaxBodySize(uploadBodyLimit))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.users.Register)
			r.Post("/login", deps.users.Login)

			// Public profiles never expose password material.
			r.Get("/users/{id}", deps.users.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authCfg))
				r.Get("/me", deps.users.Me)
				r.Post("/logout", deps.users.Logout)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			// Browsing jobs is public.
			r.Get("/", deps.jobs.List)
			r.Get("/{id}", deps.jobs.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authCfg))

				r.With(middleware.RequireEmployer()).Post("/", deps.jobs.Create)
				r.With(middleware.RequireEmployer()).Patch("/{id}", deps.jobs.Update)
				r.With(middleware.RequireEmployer()).Delete("/{id}", deps.jobs.Delete)
				r.With(middleware.RequireEmployer()).Get("/{id}/applications", deps.applications.ListForJob)

				r.With(middleware.RequireEmployee()).Post("/{id}/apply", deps.applications.ApplyToJob)
			})
		})

		r.Route("/employers", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Get("/{id}/jobs", deps.jobs.ListForEmployer)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.With(middleware.RequireEmployee()).Post("/", deps.applications.Apply)
			r.With(middleware.RequireEmployee()).Get("/mine", deps.applications.ListMine)
			r.With(middleware.RequireEmployer()).Patch("/{id}", deps.applications.SetStatus)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
