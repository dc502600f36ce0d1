package client

import (
	"context"
	"fmt"

	"webshop-backend/internal/config"

	stripe "github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

type CheckoutSessionParams struct {
	OrderID       string
	ProductName   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutGateway creates hosted payment sessions and resolves receipt
// URLs for settled payments.
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error)
	LatestReceiptURL(ctx context.Context, paymentIntentID string) (string, error)
}

// WebhookVerifier checks the signature of an inbound webhook payload and
// returns the decoded event. Verification failure means the event must be
// rejected without any further processing.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}

type StripeClient struct {
	api           *stripeclient.API
	webhookSecret string
}

func NewStripeClient(cfg *config.Stripe) *StripeClient {
	api := &stripeclient.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeClient{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p *CheckoutSessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
				},
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("orderId", p.OrderID)

	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

func (c *StripeClient) LatestReceiptURL(ctx context.Context, paymentIntentID string) (string, error) {
	listParams := &stripe.ChargeListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)

	it := c.api.Charges.List(listParams)
	for it.Next() {
		return it.Charge().ReceiptURL, nil
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("stripe list charges: %w", err)
	}

	return "", nil
}

func (c *StripeClient) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}
