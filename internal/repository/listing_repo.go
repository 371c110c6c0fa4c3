package repository

import (
	"context"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) List(ctx context.Context, category, city string, limit, offset int) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var out []domain.Listing
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *ListingRepository) ListByMaster(ctx context.Context, masterID int64) ([]domain.Listing, error) {
	var out []domain.Listing
	err := r.db.WithContext(ctx).Where("master_id = ?", masterID).Order("created_at desc").Find(&out).Error
	return out, err
}
