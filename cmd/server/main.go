package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ajurnie/internal/auth"
	"ajurnie/internal/cache"
	"ajurnie/internal/config"
	"ajurnie/internal/db"
	"ajurnie/internal/handler"
	"ajurnie/internal/mailer"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
	"ajurnie/internal/router"
	"ajurnie/internal/service"
)

// @title Ajurnie Fitness API
// @version 1.0
// @description Fitness platform API with user accounts, exercise library, goal intake, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ProgressEntry{},
			&model.CalendarEvent{},
			&model.UserCoupon{},
			&model.Coupon{},
			&model.Subscription{},
			&model.Goal{},
			&model.Exercise{},
			&model.AdminUser{},
			&model.UserProfile{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.AdminUser{},
		&model.Exercise{},
		&model.Goal{},
		&model.Subscription{},
		&model.Coupon{},
		&model.UserCoupon{},
		&model.CalendarEvent{},
		&model.ProgressEntry{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	exerciseRepo := repository.NewExerciseRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB)
	couponRepo := repository.NewCouponRepository(gormDB)
	calendarRepo := repository.NewCalendarRepository(gormDB)
	progressRepo := repository.NewProgressRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		log.Println("SMTP_HOST not set, password reset mail will be logged only")
		mail = mailer.NoopMailer{}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, adminRepo, subscriptionRepo, jwtService, tokenStore, mail, cfg.FoundingCutoff, cfg.AppBaseURL)
	exerciseService := service.NewExerciseService(exerciseRepo, cacheClient)
	goalService := service.NewGoalService(goalRepo, adminRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	accountService := service.NewAccountService(userRepo, adminRepo, couponRepo, calendarRepo, progressRepo)
	adminService := service.NewAdminService(userRepo, exerciseRepo, goalRepo, couponRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	goalHandler := handler.NewGoalHandler(goalService)
	accountHandler := handler.NewAccountHandler(accountService, subscriptionService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		jwtService,
		tokenStore,
		adminRepo,
		authHandler,
		exerciseHandler,
		goalHandler,
		accountHandler,
		adminHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
