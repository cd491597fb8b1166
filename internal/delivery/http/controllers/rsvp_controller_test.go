package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSVPController_Confirm(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"nome":"Ana Silva","adultos":2,"criancas":1,"mensagem":"Parabéns!"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "children only",
			body:       `{"nome":"Bruno","adultos":0,"criancas":2}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"adultos":2}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "nome is required",
		},
		{
			name:           "negative adults",
			body:           `{"nome":"Ana","adultos":-1,"criancas":2}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "adultos must be non-negative",
		},
		{
			name:           "zero guests",
			body:           `{"nome":"Ana","adultos":0,"criancas":0}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least one guest",
		},
		{
			name:           "invitation not found",
			body:           `{"nome":"Ana","adultos":1}`,
			fakeErr:        domain.ErrNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "invitation not found",
		},
		{
			name:           "service error",
			body:           `{"nome":"Ana","adultos":1}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGuestService{confirmErr: tt.fakeErr}
			ctrl := NewRSVPController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/invitations/festa-ab12c/rsvps", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slug", "festa-ab12c")
			rr := httptest.NewRecorder()

			ctrl.Confirm(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "festa-ab12c", fake.lastSlug)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var entry domain.RSVP
				require.NoError(t, json.Unmarshal(dataBytes, &entry))
				assert.Equal(t, "rsvp-created", entry.ID)
			} else if tt.wantBodySubstr != "" {
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestRSVPController_Remove(t *testing.T) {
	tests := []struct {
		name       string
		rsvpID     string
		fakeErr    error
		wantStatus int
	}{
		{"success", "rsvp-1", nil, http.StatusOK},
		{"missing rsvpID", "", nil, http.StatusBadRequest},
		{"wrong token", "rsvp-1", domain.ErrForbidden, http.StatusForbidden},
		{"entry not found", "rsvp-unknown", domain.ErrNotFound, http.StatusNotFound},
		{"service error", "rsvp-1", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGuestService{removeErr: tt.fakeErr}
			ctrl := NewRSVPController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "/invitations/festa-ab12c/rsvps/"+tt.rsvpID+"?token=tok-1", nil)
			req.SetPathValue("slug", "festa-ab12c")
			req.SetPathValue("rsvpID", tt.rsvpID)
			rr := httptest.NewRecorder()

			ctrl.Remove(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "festa-ab12c", fake.lastSlug)
				assert.Equal(t, "tok-1", fake.lastToken)
				assert.Equal(t, tt.rsvpID, fake.lastRemoveID)
			}
		})
	}
}
