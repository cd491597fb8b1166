package main

import (
	"log"
	"net/http"
	"os"

	"convitepro/config"
	_ "convitepro/docs"
	"convitepro/internal/adapters/auth"
	"convitepro/internal/adapters/email"
	"convitepro/internal/adapters/mercadolibre"
	"convitepro/internal/database"
	delivery "convitepro/internal/delivery/http"
	"convitepro/internal/delivery/http/controllers"
	"convitepro/internal/delivery/http/middleware"
	"convitepro/internal/repository/postgres"
	"convitepro/internal/services"
)

// @title ConvitePro API
// @version 1.0
// @description Digital invitation builder: Mercado Libre purchases are exchanged for single-use creation tokens, invitations are public by slug and managed with the creation token.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger()

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	tokenRepo := postgres.NewAccessTokenRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)

	// Adapters
	gateway := mercadolibre.NewClient(http.DefaultClient, cfg.MLAccessToken, mercadolibre.DefaultBaseURL)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SES.Region,
			AccessKeyID:     cfg.Email.SES.AccessKeyID,
			SecretAccessKey: cfg.Email.SES.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	secretVerifier, err := auth.NewSecretVerifier(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		logger.Error("failed to configure admin gate", "err", err)
		os.Exit(1)
	}
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	purchaseService := services.NewPurchaseService(gateway, tokenRepo, emailService, logger, cfg.SiteURL, cfg.ProductSignature)
	invitationService := services.NewInvitationService(invitationRepo, rsvpRepo)
	guestService := services.NewGuestService(invitationRepo, rsvpRepo)
	adminService := services.NewAdminService(tokenRepo, invitationRepo, rsvpRepo)

	// Controllers
	webhookController := controllers.NewWebhookController(logger, purchaseService)
	invitationController := controllers.NewInvitationController(logger, invitationService)
	rsvpController := controllers.NewRSVPController(logger, guestService)
	adminController := controllers.NewAdminController(logger, adminService, secretVerifier, tokenIssuer)

	mux := delivery.NewRouter(logger, webhookController, invitationController, rsvpController, adminController, tokenVerifier)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	addr := ":" + cfg.Port
	logger.Info("starting server", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
