package mercadolibre

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"convitepro/internal/domain"
)

// DefaultBaseURL is the production payments API endpoint.
const DefaultBaseURL = "https://api.mercadolibre.com"

type paymentClient struct {
	client      *http.Client
	accessToken string
	baseURL     string
}

// NewClient returns a PaymentGateway backed by the Mercado Libre payments
// API. An empty baseURL selects DefaultBaseURL; tests point it at a local
// server.
func NewClient(client *http.Client, accessToken, baseURL string) domain.PaymentGateway {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &paymentClient{client: client, accessToken: accessToken, baseURL: baseURL}
}

func (c *paymentClient) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if c.accessToken == "" {
		return nil, domain.ErrMissingCredential
	}

	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, paymentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: payments api returned status %d", domain.ErrGatewayFailure, resp.StatusCode)
	}

	var body struct {
		ID          json.Number `json:"id"`
		Status      string      `json:"status"`
		Description string      `json:"description"`
		Payer       struct {
			ID    json.Number `json:"id"`
			Email string      `json:"email"`
		} `json:"payer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode payment response: %v", domain.ErrGatewayFailure, err)
	}

	return &domain.Payment{
		ID:          body.ID.String(),
		Status:      body.Status,
		Description: body.Description,
		PayerEmail:  body.Payer.Email,
		PayerID:     body.Payer.ID.String(),
	}, nil
}
