package main

import (
	"log"
	"os"

	"github.com/dkimathi/invoicer-api/internal/application/service"
	"github.com/dkimathi/invoicer-api/internal/config"
	"github.com/dkimathi/invoicer-api/internal/infrastructure/database"
	"github.com/dkimathi/invoicer-api/internal/infrastructure/repository"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/handler"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/routes"
	"github.com/dkimathi/invoicer-api/pkg/email"
	"github.com/dkimathi/invoicer-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	loginTokenRepo := repository.NewLoginTokenRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, loginTokenRepo, jwtManager, emailService)
	composerService := service.NewComposerService(invoiceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	renderService := service.NewRenderService(invoiceRepo)
	exportService := service.NewExportService(invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Composer: handler.NewComposerHandler(composerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService, renderService, exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
