package domain

import (
	"context"
	"time"
)

// AccessToken is a single-use credential that authorizes exactly one
// invitation-creation session. Column names follow the original store
// (comprador = buyer, usado = used).
// swagger:model AccessToken
type AccessToken struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	PaymentID    string    `json:"payment_id"`
	BuyerEmail   string    `json:"comprador_email"`
	BuyerID      string    `json:"comprador_id"`
	Used         bool      `json:"usado"`
	InvitationID *string   `json:"convite_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAccessToken returns an unused AccessToken for the given payment and buyer.
// ID is set by the repository on create.
func NewAccessToken(token, paymentID, buyerEmail, buyerID string, createdAt time.Time) *AccessToken {
	return &AccessToken{
		Token:      token,
		PaymentID:  paymentID,
		BuyerEmail: buyerEmail,
		BuyerID:    buyerID,
		Used:       false,
		CreatedAt:  createdAt,
	}
}

// AccessTokenRepository defines storage operations for access tokens.
// Create must return ErrDuplicatePayment when a row with the same payment_id
// already exists; the unique constraint is the idempotency guard for
// redelivered payment notifications.
type AccessTokenRepository interface {
	Create(ctx context.Context, t *AccessToken) error
	GetByToken(ctx context.Context, token string) (*AccessToken, error)
	List(ctx context.Context, params PaginationParams) ([]*AccessToken, int, error)
	Count(ctx context.Context) (int, error)
}
