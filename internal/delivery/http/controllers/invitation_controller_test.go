package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationController_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkInv       func(t *testing.T, inv domain.Invitation)
	}{
		{
			name:       "success",
			body:       `{"token":"tok-1","nome_evento":"Festa da Maria","data_evento":"2026-10-01"}`,
			wantStatus: http.StatusCreated,
			checkInv: func(t *testing.T, inv domain.Invitation) {
				assert.Equal(t, "inv-created", inv.ID)
				assert.Equal(t, "Festa da Maria", inv.EventName)
				assert.Equal(t, "festa-teste-ab12c", inv.Slug)
			},
		},
		{
			name:           "missing token",
			body:           `{"nome_evento":"Festa","data_evento":"2026-10-01"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "token is required",
		},
		{
			name:           "missing event name",
			body:           `{"token":"tok-1","data_evento":"2026-10-01"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "nome_evento is required",
		},
		{
			name:           "bad date format",
			body:           `{"token":"tok-1","nome_evento":"Festa","data_evento":"01/10/2026"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "data_evento",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "token already used",
			body:           `{"token":"tok-used","nome_evento":"Festa","data_evento":"2026-10-01"}`,
			fakeErr:        domain.ErrTokenUsed,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "token already used",
		},
		{
			name:           "service error",
			body:           `{"token":"tok-1","nome_evento":"Festa","data_evento":"2026-10-01"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvitationService{createErr: tt.fakeErr}
			ctrl := NewInvitationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/invitations", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var inv domain.Invitation
				require.NoError(t, json.Unmarshal(dataBytes, &inv))
				tt.checkInv(t, inv)
				assert.Equal(t, "tok-1", fake.lastCreateToken)
			} else if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestInvitationController_GetBySlug(t *testing.T) {
	inv := &domain.Invitation{
		ID:        "inv-1",
		EventName: "Festa da Maria",
		Slug:      "festa-da-maria-ab12c",
		EventDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Views:     7,
	}

	tests := []struct {
		name       string
		slug       string
		fakeErr    error
		wantStatus int
	}{
		{"success", "festa-da-maria-ab12c", nil, http.StatusOK},
		{"missing slug", "", nil, http.StatusBadRequest},
		{"not found", "unknown", domain.ErrNotFound, http.StatusNotFound},
		{"service error", "festa-da-maria-ab12c", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvitationService{getPublicErr: tt.fakeErr, getPublicResult: inv}
			ctrl := NewInvitationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/invitations/"+tt.slug, nil)
			req.SetPathValue("slug", tt.slug)
			rr := httptest.NewRecorder()

			ctrl.GetBySlug(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var got domain.Invitation
				require.NoError(t, json.Unmarshal(dataBytes, &got))
				assert.Equal(t, inv.Slug, got.Slug)
				assert.Equal(t, 7, got.Views)
			}
		})
	}
}

func TestInvitationController_Manage(t *testing.T) {
	view := &domain.ManagementView{
		Invitation: &domain.Invitation{ID: "inv-1", Slug: "festa-ab12c", EventName: "Festa"},
		Guests: []*domain.RSVP{
			{ID: "r1", Name: "Ana", Adults: 2, Children: 1},
		},
		Stats: domain.GuestStats{Confirmations: 1, Adults: 2, Children: 1},
	}

	tests := []struct {
		name       string
		token      string
		fakeErr    error
		wantStatus int
	}{
		{"success", "tok-1", nil, http.StatusOK},
		{"wrong token", "tok-wrong", domain.ErrForbidden, http.StatusForbidden},
		{"not found", "tok-1", domain.ErrNotFound, http.StatusNotFound},
		{"service error", "tok-1", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvitationService{managementErr: tt.fakeErr, managementResult: view}
			ctrl := NewInvitationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodGet, "/invitations/festa-ab12c/manage?token="+tt.token, nil)
			req.SetPathValue("slug", "festa-ab12c")
			rr := httptest.NewRecorder()

			ctrl.Manage(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, "festa-ab12c", fake.lastManageSlug)
			assert.Equal(t, tt.token, fake.lastManageToken)
			if tt.wantStatus == http.StatusOK {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var got domain.ManagementView
				require.NoError(t, json.Unmarshal(dataBytes, &got))
				assert.Len(t, got.Guests, 1)
				assert.Equal(t, 2, got.Stats.Adults)
			}
		})
	}
}

func TestInvitationController_Update(t *testing.T) {
	updated := &domain.Invitation{ID: "inv-1", Slug: "festa-ab12c", EventName: "Festa Nova"}

	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkUpdate    func(t *testing.T, upd *domain.InvitationUpdate)
	}{
		{
			name:       "success partial update",
			body:       `{"nome_evento":"Festa Nova","cor":"#ff0000"}`,
			wantStatus: http.StatusOK,
			checkUpdate: func(t *testing.T, upd *domain.InvitationUpdate) {
				require.NotNil(t, upd.EventName)
				assert.Equal(t, "Festa Nova", *upd.EventName)
				require.NotNil(t, upd.Color)
				assert.Equal(t, "#ff0000", *upd.Color)
				assert.Nil(t, upd.Phrase)
			},
		},
		{
			name:       "date update parsed",
			body:       `{"data_evento":"2026-12-25"}`,
			wantStatus: http.StatusOK,
			checkUpdate: func(t *testing.T, upd *domain.InvitationUpdate) {
				require.NotNil(t, upd.EventDate)
				assert.Equal(t, 2026, upd.EventDate.Year())
			},
		},
		{
			name:           "empty event name rejected",
			body:           `{"nome_evento":"  "}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "nome_evento cannot be empty",
		},
		{
			name:           "bad date rejected",
			body:           `{"data_evento":"25/12/2026"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "data_evento",
		},
		{
			name:           "wrong token",
			body:           `{"nome_evento":"Festa"}`,
			fakeErr:        domain.ErrForbidden,
			wantStatus:     http.StatusForbidden,
			wantBodySubstr: "forbidden",
		},
		{
			name:           "not found",
			body:           `{"nome_evento":"Festa"}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeInvitationService{updateErr: tt.fakeErr, updateResult: updated}
			ctrl := NewInvitationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPatch, "/invitations/festa-ab12c?token=tok-1", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slug", "festa-ab12c")
			rr := httptest.NewRecorder()

			ctrl.Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "tok-1", fake.lastManageToken)
				if tt.checkUpdate != nil {
					tt.checkUpdate(t, fake.lastUpdate)
				}
			} else if tt.wantBodySubstr != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestInvitationController_ExportGuestsCSV(t *testing.T) {
	view := &domain.ManagementView{
		Invitation: &domain.Invitation{ID: "inv-1", Slug: "festa-ab12c"},
		Guests: []*domain.RSVP{
			{ID: "r1", Name: "Ana Silva", Adults: 2, Children: 1, Message: "Parabéns!", CreatedAt: time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)},
			{ID: "r2", Name: "Bruno", Adults: 1, Children: 0, CreatedAt: time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)},
		},
		Stats: domain.GuestStats{Confirmations: 2, Adults: 3, Children: 1},
	}

	t.Run("success", func(t *testing.T) {
		fake := &fakeInvitationService{managementResult: view}
		ctrl := NewInvitationController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/invitations/festa-ab12c/guests.csv?token=tok-1", nil)
		req.SetPathValue("slug", "festa-ab12c")
		rr := httptest.NewRecorder()

		ctrl.ExportGuestsCSV(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rr.Header().Get("Content-Disposition"), "presencas-festa-ab12c.csv")

		body := rr.Body.Bytes()
		require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "CSV must start with UTF-8 BOM")
		content := string(body[3:])
		lines := strings.Split(strings.TrimSpace(content), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Nome,Adultos,Criancas,Mensagem,Data", strings.TrimSpace(lines[0]))
		assert.Contains(t, lines[1], "Ana Silva")
		assert.Contains(t, lines[1], "2026-09-01 14:30")
		assert.Contains(t, lines[2], "Bruno")
	})

	t.Run("wrong token", func(t *testing.T) {
		fake := &fakeInvitationService{managementErr: domain.ErrForbidden}
		ctrl := NewInvitationController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/invitations/festa-ab12c/guests.csv?token=bad", nil)
		req.SetPathValue("slug", "festa-ab12c")
		rr := httptest.NewRecorder()

		ctrl.ExportGuestsCSV(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
	})
}
