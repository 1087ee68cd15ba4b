// Package server wires configuration, storage, sessions and services into the
// Fiber application and declares the route table.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobportal/internal/auth"
	"jobportal/internal/cache"
	"jobportal/internal/config"
	"jobportal/internal/database"
	"jobportal/internal/middleware"
	"jobportal/internal/repository"
	"jobportal/internal/service"
	"jobportal/internal/session"
	"jobportal/internal/upload"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobportal/internal/models"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	sessions session.Store
	resumes  upload.Store
	guard    auth.Guard

	userRepo    repository.UserRepository
	jobRepo     repository.JobRepository
	appRepo     repository.ApplicationRepository
	profileRepo repository.ProfileRepository

	authService        *service.AuthService
	jobService         *service.JobService
	applicationService *service.ApplicationService
	profileService     *service.ProfileService
}

// NewServer creates a server instance with all dependencies initialized from
// configuration. Sessions live in Redis when it is reachable and fall back to
// an in-process store otherwise.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, ttl)
	} else {
		middleware.Logger.Warn("Redis unavailable, using in-memory sessions")
		sessions = session.NewMemoryStore(ttl)
	}

	resumes, err := upload.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("resume store setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, sessions, resumes)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with a sqlite database and an in-memory session store.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sessions session.Store, resumes upload.Store) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	prom := middleware.InitMetrics("jobportal-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		sessions:       sessions,
		resumes:        resumes,
		userRepo:       userRepo,
		jobRepo:        jobRepo,
		appRepo:        appRepo,
		profileRepo:    profileRepo,
	}

	server.authService = service.NewAuthService(userRepo, sessions)
	server.jobService = service.NewJobService(jobRepo, server.guard)
	server.applicationService = service.NewApplicationService(appRepo, jobRepo, resumes, server.guard)
	server.profileService = service.NewProfileService(userRepo, profileRepo, sessions, server.guard)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID into logs
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Tracing spans per request when enabled
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	// AllowCredentials is required for the session cookie.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.Envelope{
				Success: false,
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes declares the explicit route table. Every /api route passes the
// session resolver; authorization itself happens in the services so each
// operation keeps its own denial message.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api", s.SessionMiddleware())

	// Tighter per-IP budget on credential endpoints than the global limiter.
	authGroup := api.Group("/auth", middleware.RateLimit(s.redis, 10, time.Minute, "auth"))
	authGroup.Post("/register", s.Register)
	authGroup.Post("/login", s.Login)
	authGroup.Post("/logout", s.Logout)
	authGroup.Get("/check", s.CheckAuth)

	jobs := api.Group("/jobs")
	jobs.Get("/", s.ListJobs)
	jobs.Get("/search", s.SearchJobs)
	jobs.Get("/mine", s.MyJobs)
	jobs.Get("/:jobId", s.GetJob)
	jobs.Post("/", s.CreateJob)
	jobs.Put("/:jobId", s.UpdateJob)
	jobs.Delete("/:jobId", s.DeleteJob)

	applications := api.Group("/applications")
	applications.Post("/", s.Apply)
	applications.Get("/mine", s.MyApplications)
	applications.Get("/job/:jobId", s.JobApplications)
	applications.Put("/:applicationId/status", s.UpdateApplicationStatus)
	applications.Get("/check/:jobId", s.CheckApplication)

	profile := api.Group("/profile")
	profile.Get("/", s.GetMyProfile)
	profile.Get("/:userId", s.GetProfile)
	profile.Put("/", s.UpdateProfile)
}

// SessionMiddleware resolves the session cookie into a principal stored in
// request locals. It never rejects: unauthenticated requests proceed with no
// principal and each service decides whether that is acceptable.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(s.config.SessionCookie)
		if token == "" {
			return c.Next()
		}

		p, err := s.sessions.Resolve(c.UserContext(), token)
		if err != nil {
			// Treat a session-store failure as an unauthenticated request
			// rather than serving someone else's identity.
			middleware.Logger.WarnContext(c.UserContext(), "session resolve failed",
				"error", err)
			return c.Next()
		}
		if p == nil {
			return c.Next()
		}

		c.Locals("principal", p)
		c.Locals("sessionToken", token)
		c.Locals("userID", p.UserID)
		return c.Next()
	}
}

// principal returns the resolved session principal, or nil when the request
// is unauthenticated.
func (s *Server) principal(c *fiber.Ctx) *auth.Principal {
	if p, ok := c.Locals("principal").(*auth.Principal); ok {
		return p
	}
	return nil
}

// sessionToken returns the token behind the current principal, or "".
func (s *Server) sessionToken(c *fiber.Ctx) string {
	if t, ok := c.Locals("sessionToken").(string); ok {
		return t
	}
	return ""
}

// HealthCheck handles health check requests.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: the
// server keeps working on in-memory sessions without it, so an absent Redis
// reports as unavailable without failing readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Job Portal API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Job Portal API",
		// Room for resume attachments.
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, err)
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
