package domain

import (
	"context"
	"time"
)

// DashboardStats is the operator dashboard summary.
// swagger:model DashboardStats
type DashboardStats struct {
	Tokens      int           `json:"tokens"`
	Invitations int           `json:"convites"`
	TotalViews  int           `json:"views"`
	Recent      []*Invitation `json:"recentes"`
}

// AdminService defines operator-only operations behind the admin gate.
type AdminService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	ListTokens(ctx context.Context, params PaginationParams) ([]*AccessToken, int, error)
	// MintToken creates an access token by hand, outside the payment flow.
	MintToken(ctx context.Context, buyerEmail string) (*AccessToken, error)
	DeleteInvitation(ctx context.Context, id string) error
	DeleteRSVP(ctx context.Context, id string) error
}

// SecretVerifier checks the operator password against the configured secret.
type SecretVerifier interface {
	Verify(password string) error
}

// TokenIssuer issues a signed session token for an authenticated operator.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
