package repository

import (
	"context"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetWithClientEmail loads a booking together with the client's contact
// email, needed when registering a checkout preference.
func (r *BookingRepository) GetWithClientEmail(ctx context.Context, id int64) (*domain.Booking, string, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	var email string
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", b.ClientID).
		Pluck("email", &email).Error; err != nil {
		return nil, "", err
	}
	return b, email, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, id int64, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]any{
		"status":        domain.BookingCancelled,
		"cancel_reason": reason,
		"cancelled_at":  now,
	}).Error
}

// ConfirmCompletion stamps the client confirmation. The WHERE guard keeps
// the invariant that only completed bookings can be confirmed.
func (r *BookingRepository) ConfirmCompletion(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ? AND client_confirmed_at IS NULL", id, domain.BookingCompleted).
		Update("client_confirmed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).
		Order("scheduled_at desc").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByMaster(ctx context.Context, masterID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).Where("master_id = ?", masterID).
		Order("scheduled_at desc").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}
