package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"
)

// RSVPController serves guest confirmations: a public confirm endpoint and an
// owner-gated delete.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewRSVPController(logger *slog.Logger, svc domain.GuestService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// ConfirmRSVPRequest is the request body for POST /invitations/{slug}/rsvps.
type ConfirmRSVPRequest struct {
	Name     string `json:"nome"`
	Adults   int    `json:"adultos"`
	Children int    `json:"criancas"`
	Message  string `json:"mensagem"`
}

// Validate implements Validator.
func (c ConfirmRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "nome is required")
	}
	if c.Adults < 0 {
		errs = append(errs, "adultos must be non-negative")
	}
	if c.Children < 0 {
		errs = append(errs, "criancas must be non-negative")
	}
	if c.Adults == 0 && c.Children == 0 {
		errs = append(errs, "at least one guest is required")
	}
	return errs
}

// ConfirmRSVPSuccessResponse is the success response envelope for POST /invitations/{slug}/rsvps (201).
type ConfirmRSVPSuccessResponse struct {
	Data  *domain.RSVP      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Confirm godoc
// @Summary Confirm attendance
// @Description Records a guest confirmation for the invitation. Public, no credential required.
// @Tags rsvps
// @Accept json
// @Produce json
// @Param slug path string true "Invitation slug"
// @Param rsvp body ConfirmRSVPRequest true "Guest confirmation"
// @Success 201 {object} controllers.ConfirmRSVPSuccessResponse "data contains the created entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug}/rsvps [post]
func (c *RSVPController) Confirm(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req ConfirmRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry := &domain.RSVP{
		Name:     strings.TrimSpace(req.Name),
		Adults:   req.Adults,
		Children: req.Children,
		Message:  req.Message,
	}
	created, err := c.Service.Confirm(r.Context(), slug, entry)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
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

// RemoveRSVPResponse is the data payload for DELETE /invitations/{slug}/rsvps/{rsvpID} (200).
type RemoveRSVPResponse struct {
	Status string `json:"status"`
}

// RemoveRSVPSuccessResponse is the success response envelope for DELETE /invitations/{slug}/rsvps/{rsvpID} (200).
type RemoveRSVPSuccessResponse struct {
	Data  RemoveRSVPResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Remove godoc
// @Summary Remove a guest entry
// @Description Deletes one guest confirmation. Requires the creation token of the invitation the entry belongs to.
// @Tags rsvps
// @Produce json
// @Param slug path string true "Invitation slug"
// @Param rsvpID path string true "RSVP ID (UUID)"
// @Param token query string true "Creation token"
// @Success 200 {object} controllers.RemoveRSVPSuccessResponse "data contains status"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong token)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{slug}/rsvps/{rsvpID} [delete]
func (c *RSVPController) Remove(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	rsvpID := r.PathValue("rsvpID")
	if slug == "" || rsvpID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug or rsvpID")
		return
	}
	token := r.URL.Query().Get("token")
	if err := c.Service.Remove(r.Context(), slug, token, rsvpID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation or entry not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RemoveRSVPResponse{Status: "deleted"})
}
