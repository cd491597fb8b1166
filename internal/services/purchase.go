package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"convitepro/internal/domain"
)

type purchaseService struct {
	gateway          domain.PaymentGateway
	tokenRepo        domain.AccessTokenRepository
	emails           domain.EmailService
	logger           *slog.Logger
	siteURL          string
	productSignature string
}

// NewPurchaseService creates a PurchaseService. productSignature is the
// substring that marks a payment description as an invitation sale; the same
// marketplace account also sells unrelated goods, which must not mint tokens.
func NewPurchaseService(
	gateway domain.PaymentGateway,
	tokenRepo domain.AccessTokenRepository,
	emails domain.EmailService,
	logger *slog.Logger,
	siteURL string,
	productSignature string,
) domain.PurchaseService {
	return &purchaseService{
		gateway:          gateway,
		tokenRepo:        tokenRepo,
		emails:           emails,
		logger:           logger,
		siteURL:          siteURL,
		productSignature: productSignature,
	}
}

func (s *purchaseService) ProcessNotification(ctx context.Context, paymentID string) (*domain.PurchaseResult, error) {
	payment, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", paymentID, err)
	}

	if payment.Status != domain.PaymentStatusApproved {
		s.logger.Info("payment not approved, no token issued",
			"payment_id", paymentID, "status", payment.Status)
		return &domain.PurchaseResult{Outcome: domain.PurchaseOutcomeNotApproved}, nil
	}

	if !strings.Contains(payment.Description, s.productSignature) {
		s.logger.Info("payment is not an invitation purchase, ignored",
			"payment_id", paymentID, "description", payment.Description)
		return &domain.PurchaseResult{Outcome: domain.PurchaseOutcomeIgnored}, nil
	}

	token := domain.NewAccessToken(uuid.NewString(), paymentID, payment.PayerEmail, payment.PayerID, time.Now().UTC())
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		// Providers redeliver notifications; the unique payment_id
		// constraint turns a redelivery into this error.
		if errors.Is(err, domain.ErrDuplicatePayment) {
			s.logger.Info("notification already processed",
				"payment_id", paymentID, "buyer_email", payment.PayerEmail)
			return &domain.PurchaseResult{Outcome: domain.PurchaseOutcomeDuplicate}, nil
		}
		return nil, fmt.Errorf("create access token: %w", err)
	}

	redeemURL := fmt.Sprintf("%s/criar?token=%s", strings.TrimSuffix(s.siteURL, "/"), token.Token)
	s.logger.Info("access token issued",
		"payment_id", paymentID,
		"buyer_email", payment.PayerEmail,
		"buyer_id", payment.PayerID,
		"redeem_url", redeemURL,
	)

	// The token is durably stored at this point; a delivery failure must not
	// make the provider retry and is only logged for manual follow-up.
	if err := s.emails.SendRedemptionLink(ctx, &domain.RedemptionEmailData{
		Email:     payment.PayerEmail,
		RedeemURL: redeemURL,
	}); err != nil {
		s.logger.Warn("failed to deliver redemption link",
			"payment_id", paymentID, "buyer_email", payment.PayerEmail, "err", err)
	}

	return &domain.PurchaseResult{
		Outcome:   domain.PurchaseOutcomeIssued,
		Token:     token,
		RedeemURL: redeemURL,
	}, nil
}
