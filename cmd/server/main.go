package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muskanVaswani/sudharsetu-backend/internal/auth"
	"github.com/muskanVaswani/sudharsetu-backend/internal/config"
	"github.com/muskanVaswani/sudharsetu-backend/internal/controllers"
	"github.com/muskanVaswani/sudharsetu-backend/internal/database"
	"github.com/muskanVaswani/sudharsetu-backend/internal/metrics"
	"github.com/muskanVaswani/sudharsetu-backend/internal/middleware"
	"github.com/muskanVaswani/sudharsetu-backend/internal/models"
	"github.com/muskanVaswani/sudharsetu-backend/internal/services"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Connect the complaint store and prepare the schema
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Complaint{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.SeedComplaints(db); err != nil {
		log.Fatalf("failed to seed complaints: %v", err)
	}

	metrics.Register()

	// 3. Instantiate services
	notificationSvc := services.NewNotificationService(cfg.NotificationTTL)
	complaintSvc, err := services.NewComplaintService(db, notificationSvc)
	if err != nil {
		log.Fatalf("failed to init complaint service: %v", err)
	}
	geocodeSvc := services.NewGeocodeService(cfg.NominatimBaseURL, cfg.NominatimUserAgent)
	generator, err := services.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("failed to init Gemini client: %v", err)
	}
	assistantSvc := services.NewAssistantService(generator, cfg.ImageVerifyFailOpen)
	submissionSvc := services.NewSubmissionService(complaintSvc, geocodeSvc, assistantSvc, notificationSvc)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// 4. Initialize Echo
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// 5. Register routes
	limiter := middleware.NewRateLimiter(20, time.Second)
	api := e.Group("/api/v1", limiter.Middleware())
	adminGate := middleware.RequireAdmin(jwtManager)

	controllers.NewAuthController(cfg, jwtManager).Register(api)
	controllers.NewComplaintController(complaintSvc).Register(api, adminGate)
	controllers.NewGeocodeController(geocodeSvc).Register(api)
	controllers.NewAssistantController(assistantSvc, complaintSvc).Register(api)
	controllers.NewSubmissionController(submissionSvc).Register(api)
	controllers.NewNotificationController(notificationSvc).Register(api)

	// 6. Run server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
