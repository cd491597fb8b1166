package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"
)

// adminSessionTTL bounds how long an operator session token stays valid.
const adminSessionTTL = 12 * time.Hour

// AdminController serves the operator dashboard: login, stats, token
// administration, and content removal. Everything except Login sits behind
// the admin middleware.
type AdminController struct {
	Logger   *slog.Logger
	Service  domain.AdminService
	Verifier domain.SecretVerifier
	Issuer   domain.TokenIssuer
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService, verifier domain.SecretVerifier, issuer domain.TokenIssuer) *AdminController {
	return &AdminController{
		Logger:   logger,
		Service:  svc,
		Verifier: verifier,
		Issuer:   issuer,
	}
}

// AdminLoginRequest is the request body for POST /admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (a AdminLoginRequest) Validate() []string {
	if a.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// AdminLoginResponse is the data payload for POST /admin/login (200).
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// AdminLoginSuccessResponse is the success response envelope for POST /admin/login (200).
type AdminLoginSuccessResponse struct {
	Data  AdminLoginResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Login godoc
// @Summary Operator login
// @Description Exchanges the operator password for a short-lived Bearer session token.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body AdminLoginRequest true "Operator password"
// @Success 200 {object} controllers.AdminLoginSuccessResponse "data contains the session token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Verifier.Verify(req.Password); err != nil {
		c.Logger.WarnContext(r.Context(), "admin login rejected", "remote", r.RemoteAddr)
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	token, err := c.Issuer.Issue("admin", adminSessionTTL)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AdminLoginResponse{Token: token})
}

// AdminStatsSuccessResponse is the success response envelope for GET /admin/stats (200).
type AdminStatsSuccessResponse struct {
	Data  *domain.DashboardStats `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// Stats godoc
// @Summary Dashboard summary
// @Description Returns token count, invitation count, total views, and the most recent invitations.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminStatsSuccessResponse "data contains the summary"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/stats [get]
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Stats(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ListTokensResponse is the data payload for GET /admin/tokens (200).
type ListTokensResponse struct {
	Items      []*domain.AccessToken  `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListTokensSuccessResponse is the success response envelope for GET /admin/tokens (200).
type ListTokensSuccessResponse struct {
	Data  ListTokensResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListTokens godoc
// @Summary List access tokens
// @Description Returns a paginated list of creation tokens, newest first. Use page and page_size query params.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListTokensSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/tokens [get]
func (c *AdminController) ListTokens(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListTokens(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.AccessToken{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListTokensResponse{Items: list, Pagination: meta})
}

// MintTokenRequest is the request body for POST /admin/tokens.
type MintTokenRequest struct {
	BuyerEmail string `json:"comprador_email"`
}

// Validate implements Validator.
func (m MintTokenRequest) Validate() []string {
	if strings.TrimSpace(m.BuyerEmail) == "" {
		return []string{"comprador_email is required"}
	}
	return nil
}

// MintTokenSuccessResponse is the success response envelope for POST /admin/tokens (201).
type MintTokenSuccessResponse struct {
	Data  *domain.AccessToken `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// MintToken godoc
// @Summary Mint a creation token by hand
// @Description Creates an access token outside the payment flow, for support cases and manual sales.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MintTokenRequest true "Recipient email"
// @Success 201 {object} controllers.MintTokenSuccessResponse "data contains the minted token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/tokens [post]
func (c *AdminController) MintToken(w http.ResponseWriter, r *http.Request) {
	var req MintTokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.MintToken(r.Context(), strings.TrimSpace(req.BuyerEmail))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, token)
}

// AdminDeleteResponse is the data payload for admin delete endpoints (200).
type AdminDeleteResponse struct {
	Status string `json:"status"`
}

// AdminDeleteSuccessResponse is the success response envelope for admin delete endpoints (200).
type AdminDeleteSuccessResponse struct {
	Data  AdminDeleteResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteInvitation godoc
// @Summary Delete an invitation
// @Description Deletes an invitation and, by cascade, its guest entries.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.AdminDeleteSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/invitations/{invitationID} [delete]
func (c *AdminController) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}
	if err := c.Service.DeleteInvitation(r.Context(), invitationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AdminDeleteResponse{Status: "deleted"})
}

// DeleteRSVP godoc
// @Summary Delete a guest entry
// @Description Deletes one guest confirmation by ID.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param rsvpID path string true "RSVP ID (UUID)"
// @Success 200 {object} controllers.AdminDeleteSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/rsvps/{rsvpID} [delete]
func (c *AdminController) DeleteRSVP(w http.ResponseWriter, r *http.Request) {
	rsvpID := r.PathValue("rsvpID")
	if rsvpID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing rsvpID")
		return
	}
	if err := c.Service.DeleteRSVP(r.Context(), rsvpID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "entry not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AdminDeleteResponse{Status: "deleted"})
}
