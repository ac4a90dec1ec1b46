package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/SundayYogurt/league_service/internal/interfaces"
	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Client is the card payment processor backed by Stripe payment intents.
type Client struct {
	api *client.API
}

func New(secretKey string) (*Client, error) {
	if secretKey == "" {
		return nil, errors.New("missing stripe secret key")
	}
	return &Client{api: client.New(secretKey, nil)}, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*interfaces.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(amount),
		Currency: stripego.String(currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return toIntent(pi), nil
}

func (c *Client) RetrievePaymentIntent(ctx context.Context, id string) (*interfaces.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent %s: %w", id, err)
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripego.PaymentIntent) *interfaces.PaymentIntent {
	return &interfaces.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
