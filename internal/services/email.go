package services

import (
	"context"
	"fmt"
	"log"

	"convitepro/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRedemptionLink sends the buyer the one-time creation link using the "redemption" template.
func (s *emailService) SendRedemptionLink(ctx context.Context, data *domain.RedemptionEmailData) error {
	if data == nil {
		return fmt.Errorf("redemption email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("redemption", data)
	if err != nil {
		return fmt.Errorf("failed to render redemption template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send redemption email: %w", err)
	}
	log.Printf("[EMAIL] Redemption link sent to %s", data.Email)
	return nil
}
