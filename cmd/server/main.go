package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ojtlog/internal/auth"
	"ojtlog/internal/cache"
	"ojtlog/internal/config"
	"ojtlog/internal/db"
	"ojtlog/internal/handler"
	"ojtlog/internal/model"
	"ojtlog/internal/notify"
	"ojtlog/internal/repository"
	"ojtlog/internal/router"
	"ojtlog/internal/service"
)

// @title OJT Hours Log API
// @version 1.0
// @description Training hours log with supervisor verification via emailed single-use links.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
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
			&model.Entry{},
			&model.Supervisor{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Entry{},
		&model.Supervisor{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	entryRepo := repository.NewEntryRepository(gormDB)
	supervisorRepo := repository.NewSupervisorRepository(gormDB)

	// Auth components and outbound mail
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	dispatcher := notify.NewDispatcher(cfg)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, dispatcher, cfg.BaseURL)
	userService := service.NewUserService(userRepo)
	entryService := service.NewEntryService(entryRepo)
	supervisorService := service.NewSupervisorService(supervisorRepo)
	verificationService := service.NewVerificationService(entryRepo, supervisorRepo, userRepo, dispatcher, cfg.BaseURL)
	reportService := service.NewReportService(userRepo, entryRepo)
	adminService := service.NewAdminService(userRepo, entryRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	entryHandler := handler.NewEntryHandler(entryService)
	supervisorHandler := handler.NewSupervisorHandler(supervisorService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(adminService)

	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		entryHandler,
		supervisorHandler,
		verificationHandler,
		reportHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
