package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"convitepro/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakePurchaseService implements domain.PurchaseService for webhook handler tests.
type fakePurchaseService struct {
	result        *domain.PurchaseResult
	err           error
	lastPaymentID string
	calls         int
}

func (f *fakePurchaseService) ProcessNotification(_ context.Context, paymentID string) (*domain.PurchaseResult, error) {
	f.calls++
	f.lastPaymentID = paymentID
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.PurchaseResult{Outcome: domain.PurchaseOutcomeIssued}, nil
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	createErr        error
	createResult     *domain.Invitation
	lastCreateToken  string
	lastCreateInv    *domain.Invitation
	getPublicErr     error
	getPublicResult  *domain.Invitation
	lastPublicSlug   string
	managementErr    error
	managementResult *domain.ManagementView
	lastManageSlug   string
	lastManageToken  string
	updateErr        error
	updateResult     *domain.Invitation
	lastUpdate       *domain.InvitationUpdate
}

func (f *fakeInvitationService) Create(_ context.Context, token string, inv *domain.Invitation) (*domain.Invitation, error) {
	f.lastCreateToken = token
	f.lastCreateInv = inv
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	inv.ID = "inv-created"
	inv.Slug = "festa-teste-ab12c"
	return inv, nil
}

func (f *fakeInvitationService) GetPublic(_ context.Context, slug string) (*domain.Invitation, error) {
	f.lastPublicSlug = slug
	if f.getPublicErr != nil {
		return nil, f.getPublicErr
	}
	return f.getPublicResult, nil
}

func (f *fakeInvitationService) GetManagement(_ context.Context, slug, token string) (*domain.ManagementView, error) {
	f.lastManageSlug = slug
	f.lastManageToken = token
	if f.managementErr != nil {
		return nil, f.managementErr
	}
	return f.managementResult, nil
}

func (f *fakeInvitationService) Update(_ context.Context, slug, token string, upd *domain.InvitationUpdate) (*domain.Invitation, error) {
	f.lastManageSlug = slug
	f.lastManageToken = token
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

// fakeGuestService implements domain.GuestService for handler tests.
type fakeGuestService struct {
	confirmErr    error
	lastSlug      string
	lastEntry     *domain.RSVP
	removeErr     error
	lastToken     string
	lastRemoveID  string
}

func (f *fakeGuestService) Confirm(_ context.Context, slug string, r *domain.RSVP) (*domain.RSVP, error) {
	f.lastSlug = slug
	f.lastEntry = r
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	r.ID = "rsvp-created"
	r.InvitationID = "inv-1"
	return r, nil
}

func (f *fakeGuestService) Remove(_ context.Context, slug, token, rsvpID string) error {
	f.lastSlug = slug
	f.lastToken = token
	f.lastRemoveID = rsvpID
	return f.removeErr
}

// fakeAdminService implements domain.AdminService for handler tests.
type fakeAdminService struct {
	statsErr           error
	statsResult        *domain.DashboardStats
	listTokensErr      error
	listTokensResult   []*domain.AccessToken
	listTokensTotal    int
	lastListParams     domain.PaginationParams
	mintErr            error
	mintResult         *domain.AccessToken
	lastMintEmail      string
	deleteInvErr       error
	lastDeleteInvID    string
	deleteRSVPErr      error
	lastDeleteRSVPID   string
}

func (f *fakeAdminService) Stats(_ context.Context) (*domain.DashboardStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	if f.statsResult != nil {
		return f.statsResult, nil
	}
	return &domain.DashboardStats{}, nil
}

func (f *fakeAdminService) ListTokens(_ context.Context, params domain.PaginationParams) ([]*domain.AccessToken, int, error) {
	f.lastListParams = params
	if f.listTokensErr != nil {
		return nil, 0, f.listTokensErr
	}
	return f.listTokensResult, f.listTokensTotal, nil
}

func (f *fakeAdminService) MintToken(_ context.Context, buyerEmail string) (*domain.AccessToken, error) {
	f.lastMintEmail = buyerEmail
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	if f.mintResult != nil {
		return f.mintResult, nil
	}
	return &domain.AccessToken{ID: "tok-1", Token: "new-token", BuyerEmail: buyerEmail, CreatedAt: time.Now()}, nil
}

func (f *fakeAdminService) DeleteInvitation(_ context.Context, id string) error {
	f.lastDeleteInvID = id
	return f.deleteInvErr
}

func (f *fakeAdminService) DeleteRSVP(_ context.Context, id string) error {
	f.lastDeleteRSVPID = id
	return f.deleteRSVPErr
}

// fakeSecretVerifier implements domain.SecretVerifier.
type fakeSecretVerifier struct {
	err          error
	lastPassword string
}

func (f *fakeSecretVerifier) Verify(password string) error {
	f.lastPassword = password
	return f.err
}

// fakeTokenIssuer implements domain.TokenIssuer.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(_ string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}
