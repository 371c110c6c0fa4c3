package auth

import (
	"context"

	"ofiz/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)
	CreateMasterProfile(ctx context.Context, p *domain.MasterProfile) error
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// creditGranter rewards the referrer once the invited account exists.
type creditGranter interface {
	GrantReferralReward(ctx context.Context, referrerID, referredID int64) error
}
