package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"warmup/internal/config"
	"warmup/internal/models"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutSession is what the front-end needs to hand the buyer off
// to the payment processor.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentEvent is a processor notification that a checkout completed.
type PaymentEvent struct {
	CheckoutRef string
	PaymentRef  string
}

// CheckoutProvider is the contract boundary to the payment processor.
type CheckoutProvider interface {
	CreateSession(plan, userEmail, successURL, cancelURL string) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
}

// StripeProvider implements CheckoutProvider against Stripe hosted
// checkout. one_time is a single payment, the other plans are
// subscriptions.
type StripeProvider struct {
	webhookSecret string
	prices        map[string]string
	logger        zerolog.Logger
}

func NewStripeProvider(cfg config.Config, logger zerolog.Logger) *StripeProvider {
	stripe.Key = cfg.StripeSecretKey
	if cfg.StripeSecretKey == "" {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, checkout will fail")
	}

	return &StripeProvider{
		webhookSecret: cfg.StripeWebhookSecret,
		prices: map[string]string{
			models.PlanOneTime: cfg.PriceOneTime,
			models.PlanStarter: cfg.PriceStarter,
			models.PlanGrowth:  cfg.PriceGrowth,
		},
		logger: logger,
	}
}

func (p *StripeProvider) CreateSession(plan, userEmail, successURL, cancelURL string) (*CheckoutSession, error) {
	priceID := p.prices[plan]
	if priceID == "" {
		return nil, fmt.Errorf("no price configured for plan %q", plan)
	}

	mode := stripe.CheckoutSessionModeSubscription
	if plan == models.PlanOneTime {
		mode = stripe.CheckoutSessionModePayment
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(mode)),
		SuccessURL:    stripe.String(successURL),
		CancelURL:     stripe.String(cancelURL),
		CustomerEmail: stripe.String(userEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
	}
	params.AddMetadata("plan", plan)

	s, err := session.New(params)
	if err != nil {
		p.logger.Error().Err(err).Str("plan", plan).Msg("Stripe checkout session failed")
		return nil, err
	}

	p.logger.Info().Str("session_id", s.ID).Str("plan", plan).Msg("Checkout session created")
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the signature and returns a PaymentEvent for
// completed checkouts, or nil for event types we ignore.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, errors.New("Invalid signature")
	}

	if event.Type != "checkout.session.completed" {
		return nil, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}

	ev := &PaymentEvent{CheckoutRef: cs.ID}
	if cs.PaymentIntent != nil {
		ev.PaymentRef = cs.PaymentIntent.ID
	}
	return ev, nil
}
