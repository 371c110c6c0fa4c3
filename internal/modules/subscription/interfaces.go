package subscription

import (
	"context"
	"time"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"
	"ofiz/internal/repository"
)

type subscriptionRepo interface {
	ListPlans(ctx context.Context, audience domain.PlanAudience) ([]domain.Plan, error)
	GetPlan(ctx context.Context, id domain.PlanID) (*domain.Plan, error)
	GetActiveByUserID(ctx context.Context, userID int64) (*domain.Subscription, error)
	Create(ctx context.Context, sub *domain.Subscription) error
	Cancel(ctx context.Context, userID int64) error
	ConsumeApplication(ctx context.Context, userID int64) (*repository.ConsumeResult, error)
	ConsumeContact(ctx context.Context, userID int64) (*repository.ConsumeResult, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type cardCharger interface {
	CreateCardPayment(ctx context.Context, req mercadopago.CardPaymentRequest) (*mercadopago.Payment, error)
}
