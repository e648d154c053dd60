package main

import (
	"log"
	"net/http"

	_ "siteworks/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"siteworks/internal/auth"
	"siteworks/internal/cache"
	"siteworks/internal/config"
	"siteworks/internal/db"
	"siteworks/internal/handler"
	"siteworks/internal/mailer"
	"siteworks/internal/model"
	"siteworks/internal/repository"
	"siteworks/internal/router"
	"siteworks/internal/service"
)

// @title Siteworks Client Portal API
// @version 1.0
// @description Small business site backend with client portal auth, projects, tickets and invoices.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations. The password reset token table is created lazily by the
	// reset token store on first use.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Ticket{},
		&model.Invoice{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	invoiceRepo := repository.NewInvoiceRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	resetStore := auth.NewResetTokenStore(gormDB)

	var m mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPHost != "" {
		m = &mailer.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, resetStore, m, cacheClient, cfg.ResetLinkBase)
	projectService := service.NewProjectService(projectRepo, cacheClient)
	ticketService := service.NewTicketService(ticketRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		projectHandler,
		ticketHandler,
		invoiceHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
