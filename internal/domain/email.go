package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RedemptionEmailData holds data for the redemption-link email sent to a
// buyer after an approved purchase.
type RedemptionEmailData struct {
	Email     string
	RedeemURL string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRedemptionLink(ctx context.Context, data *RedemptionEmailData) error
}
