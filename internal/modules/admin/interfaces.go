package admin

import (
	"context"

	"ofiz/internal/domain"
)

type userRepo interface {
	ListMastersByStatus(ctx context.Context, status domain.MasterStatus, limit, offset int) ([]domain.User, error)
	SetMasterStatus(ctx context.Context, userID, adminID int64, status domain.MasterStatus, reason string) error
}

type paymentLister interface {
	List(ctx context.Context, status domain.PaymentStatus, limit, offset int) ([]domain.Payment, error)
}
