// Package billing wraps the hosted billing provider. Identifiers are
// opaque; the local subscription record stores them alongside its state.
package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Card is the raw card input collected by the trial form.
type Card struct {
	Number   string
	ExpMonth int64
	ExpYear  int64
	CVC      string
	Name     string
}

// Client is the surface the subscription service needs from the billing
// provider.
type Client interface {
	CreateCustomer(ctx context.Context, email, name, userID string) (string, error)
	CreateCardPaymentMethod(ctx context.Context, card Card) (string, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CreateTrialSubscription(ctx context.Context, customerID string, trialDays int) (string, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// StripeClient implements Client against the Stripe API.
type StripeClient struct {
	api     *client.API
	priceID string
}

func NewStripeClient(secretKey, priceID string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, priceID: priceID}
}

func (s *StripeClient) CreateCustomer(ctx context.Context, email, name, userID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return customer.ID, nil
}

func (s *StripeClient) CreateCardPaymentMethod(ctx context.Context, card Card) (string, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	params.Context = ctx

	pm, err := s.api.PaymentMethods.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment method: %w", err)
	}
	return pm.ID, nil
}

func (s *StripeClient) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	if _, err := s.api.PaymentMethods.Attach(paymentMethodID, params); err != nil {
		return fmt.Errorf("failed to attach payment method: %w", err)
	}
	return nil
}

func (s *StripeClient) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx

	if _, err := s.api.Customers.Update(customerID, params); err != nil {
		return fmt.Errorf("failed to set default payment method: %w", err)
	}
	return nil
}

func (s *StripeClient) CreateTrialSubscription(ctx context.Context, customerID string, trialDays int) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(s.priceID)},
		},
		TrialPeriodDays: stripe.Int64(int64(trialDays)),
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.Context = ctx

	sub, err := s.api.Subscriptions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub.ID, nil
}

func (s *StripeClient) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx

	if _, err := s.api.Subscriptions.Cancel(subscriptionID, params); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}
