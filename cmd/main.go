package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"bizboost/internal/caching"
	"bizboost/internal/handlers"
	"bizboost/internal/jobs/background"
	"bizboost/internal/middleware"
	"bizboost/internal/repositories"
	"bizboost/internal/services"
	"bizboost/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Optional JWKS endpoint for hosted identity provider tokens
	var jwks *keyfunc.JWKS
	if jwksURL := os.Getenv("JWKS_URL"); jwksURL != "" {
		jwks, err = keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", jwksURL, err)
		}
		defer jwks.EndBackground()
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	devBypass := os.Getenv("DEV_AUTH_BYPASS") == "true"

	storageSvc, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	for _, bucket := range []string{handlers.RegistrationDocumentsBucket, services.ApplicationUploadsBucket} {
		if err := storageSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Printf("WARNING: Failed to ensure bucket %s: %v", bucket, err)
		}
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	userRoleRepo := repositories.NewUserRoleRepo(pool)
	businessRepo := repositories.NewBusinessRepo(pool)
	registrationRepo := repositories.NewRegistrationRepo(pool)
	documentRepo := repositories.NewRegistrationDocumentRepo(pool)
	programRepo := repositories.NewProgramRepo(pool)
	formRepo := repositories.NewApplicationFormRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	enrollmentRepo := repositories.NewEnrollmentRepo(pool)
	eventRepo := repositories.NewProgramEventRepo(pool)
	materialRepo := repositories.NewProgramMaterialRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, 3600, 7*24*3600)
	userSvc := services.NewUserService(userRepo, userRoleRepo)
	sessionSvc := services.NewSessionService(userRepo, userRoleRepo, cacheSvc)
	rbacSvc := services.NewRBACService(userRoleRepo)
	registrationSvc := services.NewRegistrationService(registrationRepo, documentRepo, applicationRepo, cacheSvc)
	formSvc := services.NewFormService(formRepo)
	programSvc := services.NewProgramService(programRepo, applicationRepo, enrollmentRepo, eventRepo, materialRepo)
	applicationSvc := services.NewApplicationService(applicationRepo, enrollmentRepo, programRepo, formRepo,
		userRepo, userRoleRepo, businessRepo, formSvc, storageSvc, cacheSvc)
	enrollmentSvc := services.NewEnrollmentService(enrollmentRepo, eventRepo, materialRepo)
	analyticsSvc := services.NewAnalyticsService(registrationRepo, applicationRepo, businessRepo, cacheSvc)
	settingsSvc := services.NewSettingsService(cacheSvc)
	exportSvc := services.NewExportService(registrationSvc, applicationSvc, userSvc, programSvc, analyticsSvc)

	// Middleware
	rbacMiddleware := middleware.NewRBACMiddleware(rbacSvc)
	jwtMiddleware := middleware.JWTMiddleware(authSvc, jwks)
	optionalJWTMiddleware := middleware.OptionalJWTMiddleware(authSvc, jwks)
	versionMiddleware := middleware.NewVersionMiddleware()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(userSvc, authSvc, sessionSvc, cacheSvc, devBypass)
	userHandlers := handlers.NewUserHandlers(userSvc)
	registrationHandlers := handlers.NewRegistrationHandlers(registrationSvc, documentRepo, storageSvc)
	publicHandlers := handlers.NewPublicHandlers(programSvc, formSvc, applicationSvc, cacheSvc)
	programHandlers := handlers.NewProgramHandlers(programSvc, formSvc)
	applicationHandlers := handlers.NewApplicationHandlers(applicationSvc)
	enrollmentHandlers := handlers.NewEnrollmentHandlers(enrollmentSvc)
	adminHandlers := handlers.NewAdminHandlers(analyticsSvc, settingsSvc, exportSvc, userSvc, rbacSvc)
	eventsHandlers := handlers.NewEventsHandlers(cacheSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	// Background jobs
	jobScheduler := background.NewJobScheduler(analyticsSvc, cacheSvc)
	if err := jobScheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer jobScheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.Readiness)
	e.GET("/health/live", healthHandlers.Liveness)

	// API routes
	v1 := versionMiddleware.VersionRoute(e, "v1")

	// Authentication routes (no JWT required)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/logout", authHandlers.Logout)
	if devBypass {
		log.Printf("WARNING: Developer auth bypass is enabled")
		auth.POST("/dev-session", authHandlers.DevSession)
	}

	// Public application form (no auth required)
	v1.GET("/apply/:linkID", publicHandlers.GetForm)
	v1.POST("/apply/:linkID", publicHandlers.Submit)

	// Registration wizard drafts and submission. The wizard runs before an
	// account exists, so auth is optional: a valid token attaches the
	// applicant to program selections, an absent one does not block.
	wizard := v1.Group("/registrations", optionalJWTMiddleware)
	wizard.PUT("/draft/:draftID/:step", registrationHandlers.SaveDraftStep)
	wizard.GET("/draft/:draftID", registrationHandlers.GetDraft)
	wizard.DELETE("/draft/:draftID", registrationHandlers.ClearDraft)
	wizard.POST("", registrationHandlers.Submit)
	wizard.GET("/reference/:reference", registrationHandlers.GetByReference)
	wizard.POST("/:id/documents", registrationHandlers.UploadDocument)

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(jwtMiddleware)

	protected.GET("/session", authHandlers.Session)
	protected.GET("/me", userHandlers.Profile)
	protected.PUT("/me", userHandlers.UpdateProfile)

	// Participant portal
	protected.GET("/my/applications", applicationHandlers.Mine)
	protected.GET("/my/enrollments", enrollmentHandlers.Mine)
	protected.GET("/programs/:id/events", enrollmentHandlers.ListEvents)
	protected.GET("/programs/:id/materials", enrollmentHandlers.ListMaterials)
	protected.GET("/programs/:id", programHandlers.Get)

	// Admin dashboard (require an admin-tier role)
	admin := protected.Group("/admin")
	admin.Use(rbacMiddleware.RequireAdmin())

	admin.GET("/registrations", registrationHandlers.List)
	admin.GET("/registrations/:id", registrationHandlers.Get)
	admin.PUT("/registrations/:id/status", registrationHandlers.UpdateStatus)
	admin.GET("/registrations/:id/documents/:documentID/url", registrationHandlers.GetDocumentURL)

	admin.GET("/programs", programHandlers.List)
	admin.POST("/programs", programHandlers.Create)
	admin.PUT("/programs/:id", programHandlers.Update)
	admin.DELETE("/programs/:id", programHandlers.Delete)
	admin.POST("/programs/:id/link", programHandlers.GenerateLink)
	admin.GET("/programs/:id/stats", programHandlers.Stats)
	admin.POST("/programs/:id/form", programHandlers.CreateForm)
	admin.GET("/programs/:id/form", programHandlers.GetForm)
	admin.GET("/programs/:id/enrollments", enrollmentHandlers.ListByProgram)
	admin.POST("/programs/:id/events", enrollmentHandlers.CreateEvent)
	admin.DELETE("/programs/:id/events/:eventID", enrollmentHandlers.DeleteEvent)
	admin.POST("/programs/:id/materials", enrollmentHandlers.CreateMaterial)
	admin.DELETE("/programs/:id/materials/:materialID", enrollmentHandlers.DeleteMaterial)

	admin.GET("/applications", applicationHandlers.List)
	admin.GET("/applications/:id", applicationHandlers.Get)
	admin.PUT("/applications/:id/status", applicationHandlers.UpdateStatus)
	admin.POST("/applications/:id/approve", applicationHandlers.Approve)
	admin.PUT("/enrollments/:id/completion", enrollmentHandlers.UpdateCompletion)

	admin.GET("/analytics", adminHandlers.Analytics)
	admin.GET("/settings", adminHandlers.GetSettings)
	admin.PUT("/settings", adminHandlers.SaveSettings)
	admin.GET("/export/registrations", adminHandlers.ExportRegistrations)
	admin.GET("/export/applications", adminHandlers.ExportApplications)
	admin.GET("/export/users", adminHandlers.ExportUsers)
	admin.GET("/export/programs", adminHandlers.ExportPrograms)
	admin.GET("/export/analytics", adminHandlers.ExportAnalytics)
	admin.GET("/users", adminHandlers.ListUsers)
	admin.GET("/users/:id", adminHandlers.GetUser)
	admin.POST("/users/:id/roles", adminHandlers.AssignRole)
	admin.DELETE("/users/:id/roles/:role", adminHandlers.RemoveRole)
	admin.GET("/events/:channel", eventsHandlers.Stream)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Bizboost server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
