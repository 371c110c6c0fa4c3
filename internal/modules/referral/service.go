package referral

import (
	"context"

	"ofiz/internal/domain"
)

// defaultRewardAmount is the UYU credit granted to the referrer when an
// invited account registers.
const defaultRewardAmount = 100

type Service struct {
	credits referralRepo
	reward  float64
	loggerf func(format string, args ...interface{})
}

func NewService(credits referralRepo, reward float64, loggerf func(format string, args ...interface{})) *Service {
	if reward <= 0 {
		reward = defaultRewardAmount
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{credits: credits, reward: reward, loggerf: loggerf}
}

// GrantReferralReward credits the referrer after the invited user's account
// is created.
func (s *Service) GrantReferralReward(ctx context.Context, referrerID, referredID int64) error {
	err := s.credits.Create(ctx, &domain.ReferralCredit{
		UserID: referrerID,
		Amount: s.reward,
		Source: "referral",
	})
	if err != nil {
		return err
	}
	s.loggerf("level=info msg=referral reward granted referrer_id=%d referred_id=%d amount=%.2f", referrerID, referredID, s.reward)
	return nil
}

func (s *Service) ListAvailable(ctx context.Context, userID int64) ([]domain.ReferralCredit, error) {
	return s.credits.ListAvailable(ctx, userID)
}

func (s *Service) Balance(ctx context.Context, userID int64) (float64, error) {
	return s.credits.SumAvailable(ctx, userID)
}

// ConsumeForBooking spends available credits against a booking, oldest
// first, and returns the amount actually covered. Consumed credits are
// permanently tied to the booking.
func (s *Service) ConsumeForBooking(ctx context.Context, userID, bookingID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, nil
	}
	consumed, err := s.credits.ConsumeForBooking(ctx, userID, bookingID, amount)
	if err != nil {
		return 0, err
	}
	if consumed > 0 {
		s.loggerf("level=info msg=referral credits consumed user_id=%d booking_id=%d amount=%.2f", userID, bookingID, consumed)
	}
	return consumed, nil
}
