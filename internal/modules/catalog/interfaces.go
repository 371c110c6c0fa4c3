package catalog

import (
	"context"

	"ofiz/internal/domain"
)

type listingRepo interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	List(ctx context.Context, category, city string, limit, offset int) ([]domain.Listing, error)
	ListByMaster(ctx context.Context, masterID int64) ([]domain.Listing, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
