package subscription

import (
	"context"
	"testing"
	"time"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"
	"ofiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockSubRepo struct {
	mock.Mock
}

func (m *MockSubRepo) ListPlans(ctx context.Context, audience domain.PlanAudience) ([]domain.Plan, error) {
	args := m.Called(ctx, audience)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockSubRepo) GetPlan(ctx context.Context, id domain.PlanID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockSubRepo) GetActiveByUserID(ctx context.Context, userID int64) (*domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubRepo) Cancel(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSubRepo) ConsumeApplication(ctx context.Context, userID int64) (*repository.ConsumeResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConsumeResult), args.Error(1)
}

func (m *MockSubRepo) ConsumeContact(ctx context.Context, userID int64) (*repository.ConsumeResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ConsumeResult), args.Error(1)
}

func (m *MockSubRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockCharger struct {
	mock.Mock
}

func (m *MockCharger) CreateCardPayment(ctx context.Context, req mercadopago.CardPaymentRequest) (*mercadopago.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Payment), args.Error(1)
}

func proPlan() *domain.Plan {
	return &domain.Plan{
		ID:                domain.PlanMasterPro,
		Audience:          domain.PlanForMaster,
		Name:              "Pro",
		Price:             990,
		ApplicationsLimit: 30,
		ContactsLimit:     15,
		IsFeatured:        true,
		IsActive:          true,
	}
}

func TestPayMaster_ApprovedActivates(t *testing.T) {
	repo := new(MockSubRepo)
	charger := new(MockCharger)

	repo.On("GetPlan", mock.Anything, domain.PlanMasterPro).Return(proPlan(), nil)
	charger.On("CreateCardPayment", mock.Anything, mock.MatchedBy(func(r mercadopago.CardPaymentRequest) bool {
		return r.Amount == 990 && r.Token == "tok-1" && r.PaymentMethodID == "visa"
	})).Return(&mercadopago.Payment{ID: 900, Status: "approved", StatusDetail: "accredited"}, nil)
	repo.On("Cancel", mock.Anything, int64(7)).Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.UserID == 7 && s.PlanID == domain.PlanMasterPro &&
			s.Status == domain.SubscriptionActive && s.PaymentID == "900" &&
			s.ExpiresAt.After(s.StartsAt)
	})).Return(nil)

	resp, err := NewService(repo, charger, nil).PayMaster(context.Background(), 7, PayRequest{
		PlanID: "master_pro", CardToken: "tok-1", PaymentMethodID: "visa", PayerEmail: "m@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "900", resp.PaymentID)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "master_pro", resp.PlanID)
	repo.AssertExpectations(t)
}

func TestPayMaster_RejectedDoesNotActivate(t *testing.T) {
	repo := new(MockSubRepo)
	charger := new(MockCharger)

	repo.On("GetPlan", mock.Anything, domain.PlanMasterPro).Return(proPlan(), nil)
	charger.On("CreateCardPayment", mock.Anything, mock.Anything).
		Return(&mercadopago.Payment{ID: 901, Status: "rejected", StatusDetail: "cc_rejected_insufficient_amount"}, nil)

	resp, err := NewService(repo, charger, nil).PayMaster(context.Background(), 7, PayRequest{
		PlanID: "master_pro", CardToken: "tok-1", PaymentMethodID: "visa", PayerEmail: "m@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "cc_rejected_insufficient_amount", resp.StatusDetail)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestPayMaster_BusinessPlanRefused(t *testing.T) {
	repo := new(MockSubRepo)
	charger := new(MockCharger)

	biz := proPlan()
	biz.ID = domain.PlanBusinessStandard
	biz.Audience = domain.PlanForBusiness
	repo.On("GetPlan", mock.Anything, domain.PlanBusinessStandard).Return(biz, nil)

	_, err := NewService(repo, charger, nil).PayMaster(context.Background(), 7, PayRequest{
		PlanID: "business_standard", CardToken: "tok-1", PaymentMethodID: "visa", PayerEmail: "m@example.com",
	})
	assert.ErrorIs(t, err, ErrPlanNotForRole)
	charger.AssertNotCalled(t, "CreateCardPayment", mock.Anything, mock.Anything)
}

func TestPay_PlanNotFound(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("GetPlan", mock.Anything, domain.PlanID("nope")).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewService(repo, new(MockCharger), nil).PayBusiness(context.Background(), 7, PayRequest{
		PlanID: "nope", CardToken: "tok-1", PaymentMethodID: "visa", PayerEmail: "b@example.com",
	})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestConsumeApplication_LimitReached(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("ConsumeApplication", mock.Anything, int64(7)).
		Return(&repository.ConsumeResult{Allowed: false, Used: 30, Limit: 30, PlanID: domain.PlanMasterPro}, nil)

	err := NewService(repo, new(MockCharger), nil).ConsumeApplication(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrApplicationLimit)

	var limitErr *LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 30, limitErr.Used)
	assert.Equal(t, 30, limitErr.Limit)
	assert.Equal(t, "master_pro", limitErr.Plan)
}

func TestConsumeApplication_Allowed(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("ConsumeApplication", mock.Anything, int64(7)).
		Return(&repository.ConsumeResult{Allowed: true, Used: 5, Limit: 30, PlanID: domain.PlanMasterPro}, nil)

	assert.NoError(t, NewService(repo, new(MockCharger), nil).ConsumeApplication(context.Background(), 7))
}

func TestConsumeContact_FreeFallback(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("ConsumeContact", mock.Anything, int64(7)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.UserID == 7 && s.PlanID == domain.PlanMasterFree && s.Status == domain.SubscriptionActive
	})).Return(nil)
	repo.On("ConsumeContact", mock.Anything, int64(7)).
		Return(&repository.ConsumeResult{Allowed: true, Used: 1, Limit: 3, PlanID: domain.PlanMasterFree}, nil).Once()

	require.NoError(t, NewService(repo, new(MockCharger), nil).ConsumeContact(context.Background(), 7, domain.PlanForMaster))
	repo.AssertExpectations(t)
}

func TestConsumeContact_BusinessWithoutSubscription(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("ConsumeContact", mock.Anything, int64(7)).
		Return(nil, gorm.ErrRecordNotFound).Once()

	err := NewService(repo, new(MockCharger), nil).ConsumeContact(context.Background(), 7, domain.PlanForBusiness)
	assert.ErrorIs(t, err, ErrNoActiveSub)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCurrent_FreeTierWhenNoRow(t *testing.T) {
	repo := new(MockSubRepo)
	repo.On("GetActiveByUserID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetPlan", mock.Anything, domain.PlanMasterFree).Return(&domain.Plan{
		ID: domain.PlanMasterFree, Audience: domain.PlanForMaster, Name: "Free",
		ApplicationsLimit: 5, ContactsLimit: 3,
	}, nil)

	resp, err := NewService(repo, new(MockCharger), nil).Current(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "master_free", resp.PlanID)
	assert.Equal(t, 5, resp.ApplicationsMax)
	assert.Zero(t, resp.ApplicationsUsed)
}
