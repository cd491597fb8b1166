package domain

import "context"

// Payment statuses reported by the marketplace payment API. Only "approved"
// mints a token.
const (
	PaymentStatusApproved = "approved"
)

// Payment is the subset of the provider's payment object the webhook needs.
type Payment struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Description string `json:"description"`
	PayerEmail  string `json:"payer_email"`
	PayerID     string `json:"payer_id"`
}

// PaymentGateway looks up a payment at the marketplace API.
// Implementations return ErrMissingCredential when no access credential is
// configured and ErrGatewayFailure (wrapped) on transport or non-2xx errors.
type PaymentGateway interface {
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

// Purchase outcomes for a processed payment notification.
const (
	PurchaseOutcomeIssued     = "issued"
	PurchaseOutcomeDuplicate  = "duplicate"
	PurchaseOutcomeNotApproved = "not_approved"
	PurchaseOutcomeIgnored    = "ignored"
)

// PurchaseResult describes what a notification led to. Token and RedeemURL
// are set only for PurchaseOutcomeIssued.
type PurchaseResult struct {
	Outcome   string
	Token     *AccessToken
	RedeemURL string
}

// PurchaseService converts an approved marketplace payment into exactly one
// access token.
type PurchaseService interface {
	ProcessNotification(ctx context.Context, paymentID string) (*PurchaseResult, error)
}
