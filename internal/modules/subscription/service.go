package subscription

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"
	"ofiz/internal/pkg/metrics"
	"ofiz/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	repo    subscriptionRepo
	gateway cardCharger
	loggerf func(format string, args ...interface{})
}

func NewService(repo subscriptionRepo, gateway cardCharger, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, gateway: gateway, loggerf: loggerf}
}

func (s *Service) ListPlans(ctx context.Context, audience domain.PlanAudience) ([]domain.Plan, error) {
	return s.repo.ListPlans(ctx, audience)
}

// Current returns the caller's subscription and plan. Accounts with no
// active period run on the free tier.
func (s *Service) Current(ctx context.Context, userID int64) (*CurrentResponse, error) {
	sub, err := s.repo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			plan, perr := s.repo.GetPlan(ctx, domain.PlanMasterFree)
			if perr != nil {
				return nil, perr
			}
			return &CurrentResponse{
				PlanID:          string(plan.ID),
				PlanName:        plan.Name,
				Status:          string(domain.SubscriptionActive),
				ApplicationsMax: plan.ApplicationsLimit,
				ContactsMax:     plan.ContactsLimit,
				IsFeatured:      plan.IsFeatured,
				CanPostAds:      plan.CanPostAds,
			}, nil
		}
		return nil, err
	}

	plan, err := s.repo.GetPlan(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}
	return &CurrentResponse{
		PlanID:           string(plan.ID),
		PlanName:         plan.Name,
		Status:           string(sub.Status),
		ApplicationsUsed: sub.ApplicationsUsed,
		ApplicationsMax:  plan.ApplicationsLimit,
		ContactsUsed:     sub.ContactsUsed,
		ContactsMax:      plan.ContactsLimit,
		IsFeatured:       plan.IsFeatured,
		CanPostAds:       plan.CanPostAds,
		ExpiresAt:        sub.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// PayMaster charges a master's card for a plan period.
func (s *Service) PayMaster(ctx context.Context, userID int64, req PayRequest) (*PayResponse, error) {
	return s.pay(ctx, userID, domain.PlanForMaster, req)
}

// PayBusiness charges a business account's card for a plan period.
func (s *Service) PayBusiness(ctx context.Context, userID int64, req PayRequest) (*PayResponse, error) {
	return s.pay(ctx, userID, domain.PlanForBusiness, req)
}

// pay charges the tokenised card for the plan price and activates a new
// monthly period when the gateway approves. A non-approved charge is
// reported back as-is and activates nothing.
func (s *Service) pay(ctx context.Context, userID int64, audience domain.PlanAudience, req PayRequest) (*PayResponse, error) {
	if req.CardToken == "" {
		return nil, ErrCardTokenRequired
	}

	plan, err := s.repo.GetPlan(ctx, domain.PlanID(req.PlanID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.Audience != audience {
		return nil, ErrPlanNotForRole
	}

	charge, err := s.gateway.CreateCardPayment(ctx, mercadopago.CardPaymentRequest{
		Token:           req.CardToken,
		Amount:          plan.Price,
		Description:     plan.Name,
		Installments:    req.Installments,
		PaymentMethodID: req.PaymentMethodID,
		PayerEmail:      req.PayerEmail,
		ExternalRef:     uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}
	metrics.SubscriptionCharges.WithLabelValues(charge.Status).Inc()

	resp := &PayResponse{
		PaymentID:    strconv.FormatInt(charge.ID, 10),
		Status:       charge.Status,
		StatusDetail: charge.StatusDetail,
		PlanID:       string(plan.ID),
	}
	if charge.Status != "approved" {
		s.loggerf("level=warn msg=subscription charge not approved user_id=%d plan=%s status=%s detail=%s", userID, plan.ID, charge.Status, charge.StatusDetail)
		return resp, nil
	}

	if err := s.repo.Cancel(ctx, userID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sub := &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    plan.ID,
		Status:    domain.SubscriptionActive,
		PaymentID: resp.PaymentID,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, 1, 0),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=subscription activated user_id=%d plan=%s expires_at=%s", userID, plan.ID, sub.ExpiresAt.Format(time.RFC3339))
	return resp, nil
}

// ConsumeApplication spends one application slot for the user, starting a
// fresh free-tier period when no subscription row exists. Only masters
// apply to bookings, so the fallback audience is fixed.
func (s *Service) ConsumeApplication(ctx context.Context, userID int64) error {
	res, err := s.consumeWithFallback(ctx, userID, domain.PlanForMaster, s.repo.ConsumeApplication)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &LimitError{Err: ErrApplicationLimit, Used: res.Used, Limit: res.Limit, Plan: string(res.PlanID)}
	}
	return nil
}

// ConsumeContact spends one contact unlock for the user.
func (s *Service) ConsumeContact(ctx context.Context, userID int64, audience domain.PlanAudience) error {
	res, err := s.consumeWithFallback(ctx, userID, audience, s.repo.ConsumeContact)
	if err != nil {
		return err
	}
	if !res.Allowed {
		return &LimitError{Err: ErrContactLimit, Used: res.Used, Limit: res.Limit, Plan: string(res.PlanID)}
	}
	return nil
}

// consumeWithFallback retries once after materialising a free-tier period.
// Expired free periods are recreated here, which is what resets the monthly
// counters for unpaid accounts. Only masters have a free tier; a business
// account with no active subscription must pay first.
func (s *Service) consumeWithFallback(ctx context.Context, userID int64, audience domain.PlanAudience, consume func(context.Context, int64) (*repository.ConsumeResult, error)) (*repository.ConsumeResult, error) {
	res, err := consume(ctx, userID)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if audience != domain.PlanForMaster {
		return nil, ErrNoActiveSub
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    domain.PlanMasterFree,
		Status:    domain.SubscriptionActive,
		StartsAt:  now,
		ExpiresAt: now.AddDate(0, 1, 0),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return consume(ctx, userID)
}

// ExpireOverdue is run from the background ticker in cmd/api.
func (s *Service) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.repo.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.loggerf("level=info msg=subscriptions expired count=%d", n)
	}
	return n, nil
}
