package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/billing"
	"github.com/pulseapp/pulse-backend/internal/database"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
	"github.com/pulseapp/pulse-backend/internal/logger"
)

// Subscription statuses. The trial -> active transition is computed lazily
// when the status is read, never by a background process.
const (
	StatusFree     = "free"
	StatusTrial    = "trial"
	StatusActive   = "active"
	StatusCanceled = "canceled"
	StatusExpired  = "expired"
)

// SubscriptionService manages the trial lifecycle against the billing
// provider and the local mirror record.
type SubscriptionService struct {
	repo      interfaces.SubscriptionRepositoryInterface
	billing   billing.Client
	trialDays int
	now       func() time.Time
}

func NewSubscriptionService(repo interfaces.SubscriptionRepositoryInterface, billingClient billing.Client, trialDays int) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		billing:   billingClient,
		trialDays: trialDays,
		now:       time.Now,
	}
}

// Status reads the user's subscription, applying the lazy trial -> active
// transition and persisting it so later reads agree.
func (s *SubscriptionService) Status(ctx context.Context, userID string) (*domain.SubscriptionStatus, error) {
	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "SUBSCRIPTION_READ", "failed to read subscription")
	}
	if sub == nil {
		return &domain.SubscriptionStatus{Status: StatusFree, HasActiveSubscription: false}, nil
	}

	now := s.now()
	status := effectiveStatus(sub.Status, sub.TrialEnd, now)
	if status != sub.Status {
		if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
			logger.Error("Failed to persist trial transition", "user_id", userID, "error", err)
		}
	}

	result := &domain.SubscriptionStatus{
		Status:                status,
		HasActiveSubscription: status == StatusTrial || status == StatusActive,
		TrialStart:            sub.TrialStart,
		TrialEnd:              sub.TrialEnd,
	}
	if status == StatusTrial && sub.TrialEnd != nil {
		days := trialDaysRemaining(*sub.TrialEnd, now)
		result.DaysRemaining = &days
	}
	return result, nil
}

// effectiveStatus applies the lazy trial -> active transition.
func effectiveStatus(stored string, trialEnd *time.Time, now time.Time) string {
	if stored == StatusTrial && trialEnd != nil && now.After(*trialEnd) {
		return StatusActive
	}
	return stored
}

func trialDaysRemaining(trialEnd time.Time, now time.Time) int {
	days := int(math.Ceil(trialEnd.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days
}

// StartTrial opens a trial: customer + card + subscription at the billing
// provider, then the local mirror row. When the local write fails the
// remote subscription is canceled to avoid charging a user the app does
// not know about; that compensation is itself best-effort.
func (s *SubscriptionService) StartTrial(ctx context.Context, req domain.TrialRequest) (*domain.TrialStart, error) {
	expMonth, expYear, err := parseCardExpiry(req.CardExpiry)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid card expiry, expected MM/YY")
	}

	customerID, err := s.billing.CreateCustomer(ctx, req.Email, req.CardName, req.UserID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeBilling, "CUSTOMER_CREATE", "failed to create billing customer")
	}

	paymentMethodID, err := s.billing.CreateCardPaymentMethod(ctx, billing.Card{
		Number:   req.CardNumber,
		ExpMonth: expMonth,
		ExpYear:  expYear,
		CVC:      req.CardCVC,
		Name:     req.CardName,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeBilling, "PAYMENT_METHOD_CREATE", "failed to create payment method")
	}

	if err := s.billing.AttachPaymentMethod(ctx, paymentMethodID, customerID); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeBilling, "PAYMENT_METHOD_ATTACH", "failed to attach payment method")
	}
	if err := s.billing.SetDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeBilling, "PAYMENT_METHOD_DEFAULT", "failed to set default payment method")
	}

	subscriptionID, err := s.billing.CreateTrialSubscription(ctx, customerID, s.trialDays)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeBilling, "SUBSCRIPTION_CREATE", "failed to create subscription")
	}

	trialStart := s.now()
	trialEnd := trialStart.Add(time.Duration(s.trialDays) * 24 * time.Hour)

	row := &database.Subscription{
		UserID:                req.UserID,
		Status:                StatusTrial,
		TrialStart:            &trialStart,
		TrialEnd:              &trialEnd,
		StripeCustomerID:      customerID,
		StripeSubscriptionID:  subscriptionID,
		StripePaymentMethodID: paymentMethodID,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		// Compensate: don't leave a remote subscription the app can't see.
		if cancelErr := s.billing.CancelSubscription(ctx, subscriptionID); cancelErr != nil {
			logger.Error("Failed to cancel subscription after local write failure",
				"user_id", req.UserID, "subscription_id", subscriptionID, "error", cancelErr)
		}
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "SUBSCRIPTION_SAVE", "failed to save subscription")
	}

	return &domain.TrialStart{TrialEnd: trialEnd}, nil
}

// Cancel cancels at the billing provider and marks the local row.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) error {
	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "SUBSCRIPTION_READ", "failed to read subscription")
	}
	if sub == nil {
		return apperrors.ErrSubscriptionGone
	}

	if sub.StripeSubscriptionID != "" {
		if err := s.billing.CancelSubscription(ctx, sub.StripeSubscriptionID); err != nil {
			return apperrors.Wrap(err, apperrors.ErrorTypeBilling, "SUBSCRIPTION_CANCEL", "failed to cancel subscription")
		}
	}

	if err := s.repo.MarkCanceled(ctx, userID, s.now()); err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "SUBSCRIPTION_UPDATE", "failed to update subscription")
	}
	return nil
}

func parseCardExpiry(expiry string) (int64, int64, error) {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return 0, 0, errors.New("expected MM/YY")
	}
	month, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}
	year, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || year < 0 || year > 99 {
		return 0, 0, errors.New("invalid year")
	}
	return month, 2000 + year, nil
}
