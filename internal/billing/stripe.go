package billing

import (
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"letterforge/internal/config"
)

// EventTypeCheckoutCompleted is the only event type this service acts on.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// CheckoutSession is the caller-facing result of session creation.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// PaymentEvent is a verified, normalized webhook delivery. DocumentID comes
// from the session metadata set at checkout time. PayerEmail may be empty.
type PaymentEvent struct {
	ID          string
	Type        string
	DocumentID  string
	PayerEmail  string
	AmountTotal int64
	Currency    string
}

// Client wraps the payment provider. The document id rides along in session
// metadata so the webhook can correlate the confirmation back to the store.
type Client struct {
	api           *client.API
	priceID       string
	webhookSecret string
	appBaseURL    string
}

func New(cfg config.StripeConfig, appBaseURL string) *Client {
	c := &Client{
		priceID:       cfg.PriceID,
		webhookSecret: cfg.WebhookSecret,
		appBaseURL:    appBaseURL,
	}
	if cfg.SecretKey != "" {
		c.api = &client.API{}
		c.api.Init(cfg.SecretKey, nil)
	}
	return c
}

// Configured reports whether checkout can be offered at all.
func (c *Client) Configured() bool {
	return c.api != nil && c.priceID != ""
}

func (c *Client) CreateCheckoutSession(documentID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(c.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.appBaseURL + "/editor?session_id={CHECKOUT_SESSION_ID}&document_id=" + documentID),
		CancelURL:  stripe.String(c.appBaseURL + "/preview?document_id=" + documentID),
	}
	params.AddMetadata("document_id", documentID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session failed: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyWebhook checks the provider signature over the raw payload and
// normalizes the event. Signature failures are the caller's cue to reject
// with 400; anything after verification must still be acknowledged.
func (c *Client) VerifyWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	if c.webhookSecret == "" {
		return nil, fmt.Errorf("webhook secret not configured")
	}

	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature failed: %w", err)
	}

	normalized := &PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if normalized.Type == EventTypeCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("parse checkout session failed: %w", err)
		}
		normalized.DocumentID = sess.Metadata["document_id"]
		normalized.AmountTotal = sess.AmountTotal
		normalized.Currency = string(sess.Currency)
		if sess.CustomerDetails != nil {
			normalized.PayerEmail = sess.CustomerDetails.Email
		}
	}

	return normalized, nil
}
