package referral

import (
	"context"

	"ofiz/internal/domain"
)

type referralRepo interface {
	Create(ctx context.Context, c *domain.ReferralCredit) error
	ListAvailable(ctx context.Context, userID int64) ([]domain.ReferralCredit, error)
	SumAvailable(ctx context.Context, userID int64) (float64, error)
	ConsumeForBooking(ctx context.Context, userID, bookingID int64, amount float64) (float64, error)
}
