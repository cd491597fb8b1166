package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"convitepro/internal/delivery/http/controllers"
	"convitepro/internal/delivery/http/middleware"
	"convitepro/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	webhookController *controllers.WebhookController,
	invitationController *controllers.InvitationController,
	rsvpController *controllers.RSVPController,
	adminController *controllers.AdminController,
	tokenVerifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(tokenVerifier, logger)

	// Payment provider webhook
	mux.HandleFunc("OPTIONS /webhooks/mercadolibre", webhookController.Preflight)
	mux.HandleFunc("GET /webhooks/mercadolibre", webhookController.Health)
	mux.HandleFunc("POST /webhooks/mercadolibre", webhookController.HandleNotification)

	// Invitations
	mux.HandleFunc("POST /invitations", invitationController.Create)
	mux.HandleFunc("GET /invitations/{slug}", invitationController.GetBySlug)
	mux.HandleFunc("GET /invitations/{slug}/manage", invitationController.Manage)
	mux.HandleFunc("PATCH /invitations/{slug}", invitationController.Update)
	mux.HandleFunc("GET /invitations/{slug}/guests.csv", invitationController.ExportGuestsCSV)

	// RSVPs
	mux.HandleFunc("POST /invitations/{slug}/rsvps", rsvpController.Confirm)
	mux.HandleFunc("DELETE /invitations/{slug}/rsvps/{rsvpID}", rsvpController.Remove)

	// Admin
	mux.HandleFunc("POST /admin/login", adminController.Login)
	mux.HandleFunc("GET /admin/stats", admin(adminController.Stats))
	mux.HandleFunc("GET /admin/tokens", admin(adminController.ListTokens))
	mux.HandleFunc("POST /admin/tokens", admin(adminController.MintToken))
	mux.HandleFunc("DELETE /admin/invitations/{invitationID}", admin(adminController.DeleteInvitation))
	mux.HandleFunc("DELETE /admin/rsvps/{rsvpID}", admin(adminController.DeleteRSVP))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
