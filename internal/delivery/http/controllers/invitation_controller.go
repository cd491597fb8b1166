package controllers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"
)

// eventDateLayout is the wire format for data_evento.
const eventDateLayout = "2006-01-02"

// InvitationController serves invitation creation, the public view, and the
// owner management surface (slug + creation token).
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInvitationRequest is the request body for POST /invitations. The token
// is the single-use creation credential issued after purchase.
type CreateInvitationRequest struct {
	Token       string `json:"token"`
	EventName   string `json:"nome_evento"`
	Phrase      string `json:"frase"`
	EventDate   string `json:"data_evento"`
	StartTime   string `json:"horario"`
	Address     string `json:"endereco"`
	MapsURL     string `json:"link_maps"`
	WhatsappURL string `json:"link_whatsapp"`
	GiftListURL string `json:"link_presentes"`
	Contact     string `json:"contato"`
	Theme       string `json:"tema"`
	Color       string `json:"cor"`
}

// Validate implements Validator.
func (c CreateInvitationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Token) == "" {
		errs = append(errs, "token is required")
	}
	if strings.TrimSpace(c.EventName) == "" {
		errs = append(errs, "nome_evento is required")
	}
	if c.EventDate == "" {
		errs = append(errs, "data_evento is required")
	} else if _, err := time.Parse(eventDateLayout, c.EventDate); err != nil {
		errs = append(errs, "data_evento must be in YYYY-MM-DD format")
	}
	return errs
}

// CreateInvitationSuccessResponse is the success response envelope for POST /invitations (201).
type CreateInvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Create godoc
// @Summary Create an invitation
// @Description Redeems a single-use creation token and creates the invitation. The slug is generated from the event name. The token is consumed atomically; a used or unknown token is rejected.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body CreateInvitationRequest true "Invitation data plus creation token"
// @Success 201 {object} controllers.CreateInvitationSuccessResponse "data contains the created invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (token used or unknown)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [post]
func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventDate, _ := time.Parse(eventDateLayout, req.EventDate)
	inv := &domain.Invitation{
		EventName:   strings.TrimSpace(req.EventName),
		Phrase:      req.Phrase,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		Address:     req.Address,
		MapsURL:     req.MapsURL,
		WhatsappURL: req.WhatsappURL,
		GiftListURL: req.GiftListURL,
		Contact:     req.Contact,
		Theme:       req.Theme,
		Color:       req.Color,
	}
	created, err := c.Service.Create(r.Context(), req.Token, inv)
	if err != nil {
		if errors.Is(err, domain.ErrTokenUsed) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "token already used or unknown")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetInvitationSuccessResponse is the success response envelope for GET /invitations/{slug} (200).
type GetInvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetBySlug godoc
// @Summary Get the public invitation page
// @Description Returns the invitation by slug and counts the view. Public, no credential required.
// @Tags invitations
// @Produce json
// @Param slug path string true "Invitation slug"
// @Success 200 {object} controllers.GetInvitationSuccessResponse "data contains the invitation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug} [get]
func (c *InvitationController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	inv, err := c.Service.GetPublic(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ManagementSuccessResponse is the success response envelope for GET /invitations/{slug}/manage (200).
type ManagementSuccessResponse struct {
	Data  *domain.ManagementView `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// Manage godoc
// @Summary Owner management view
// @Description Returns the invitation, its guest list, and adult/child totals. The token query parameter must equal the creation token.
// @Tags invitations
// @Produce json
// @Param slug path string true "Invitation slug"
// @Param token query string true "Creation token"
// @Success 200 {object} controllers.ManagementSuccessResponse "data contains invitation, guests, and totals"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong token)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug}/manage [get]
func (c *InvitationController) Manage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	token := r.URL.Query().Get("token")
	view, err := c.Service.GetManagement(r.Context(), slug, token)
	if err != nil {
		c.writeManagementError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateInvitationRequest is the request body for PATCH /invitations/{slug}.
// All fields optional; omitted fields are unchanged.
type UpdateInvitationRequest struct {
	EventName   *string `json:"nome_evento"`
	Phrase      *string `json:"frase"`
	EventDate   *string `json:"data_evento"`
	StartTime   *string `json:"horario"`
	Address     *string `json:"endereco"`
	MapsURL     *string `json:"link_maps"`
	WhatsappURL *string `json:"link_whatsapp"`
	GiftListURL *string `json:"link_presentes"`
	Contact     *string `json:"contato"`
	Theme       *string `json:"tema"`
	Color       *string `json:"cor"`
}

// Validate implements Validator.
func (u UpdateInvitationRequest) Validate() []string {
	var errs []string
	if u.EventName != nil && strings.TrimSpace(*u.EventName) == "" {
		errs = append(errs, "nome_evento cannot be empty")
	}
	if u.EventDate != nil {
		if _, err := time.Parse(eventDateLayout, *u.EventDate); err != nil {
			errs = append(errs, "data_evento must be in YYYY-MM-DD format")
		}
	}
	return errs
}

// UpdateInvitationSuccessResponse is the success response envelope for PATCH /invitations/{slug} (200).
type UpdateInvitationSuccessResponse struct {
	Data  *domain.Invitation `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Update godoc
// @Summary Update an invitation
// @Description Updates the owner-mutable fields. Requires the creation token as a query parameter. Omitted fields are unchanged. The slug never changes.
// @Tags invitations
// @Accept json
// @Produce json
// @Param slug path string true "Invitation slug"
// @Param token query string true "Creation token"
// @Param body body UpdateInvitationRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateInvitationSuccessResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong token)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug} [patch]
func (c *InvitationController) Update(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req UpdateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token := r.URL.Query().Get("token")
	upd := &domain.InvitationUpdate{
		EventName:   req.EventName,
		Phrase:      req.Phrase,
		StartTime:   req.StartTime,
		Address:     req.Address,
		MapsURL:     req.MapsURL,
		WhatsappURL: req.WhatsappURL,
		GiftListURL: req.GiftListURL,
		Contact:     req.Contact,
		Theme:       req.Theme,
		Color:       req.Color,
	}
	if req.EventDate != nil {
		d, _ := time.Parse(eventDateLayout, *req.EventDate)
		upd.EventDate = &d
	}
	inv, err := c.Service.Update(r.Context(), slug, token, upd)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeManagementError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// ExportGuestsCSV godoc
// @Summary Export the guest list as CSV
// @Description Returns the RSVP list as a CSV attachment (UTF-8 with BOM, so spreadsheet apps detect the encoding). Requires the creation token.
// @Tags invitations
// @Produce text/csv
// @Param slug path string true "Invitation slug"
// @Param token query string true "Creation token"
// @Success 200 {string} string "CSV file"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong token)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug}/guests.csv [get]
func (c *InvitationController) ExportGuestsCSV(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	token := r.URL.Query().Get("token")
	view, err := c.Service.GetManagement(r.Context(), slug, token)
	if err != nil {
		c.writeManagementError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="presencas-`+slug+`.csv"`)
	w.WriteHeader(http.StatusOK)

	// BOM first so Excel opens the file as UTF-8.
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Nome", "Adultos", "Criancas", "Mensagem", "Data"})
	for _, g := range view.Guests {
		_ = cw.Write([]string{
			g.Name,
			strconv.Itoa(g.Adults),
			strconv.Itoa(g.Children),
			g.Message,
			g.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	cw.Flush()
}

// writeManagementError maps the shared owner-surface errors to responses.
func (c *InvitationController) writeManagementError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
		return
	}
	if errors.Is(err, domain.ErrForbidden) {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
