package repository

import (
	"context"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ctx context.Context, c *domain.ReferralCredit) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ReferralRepository) ListAvailable(ctx context.Context, userID int64) ([]domain.ReferralCredit, error) {
	var out []domain.ReferralCredit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used = ?", userID, false).
		Order("created_at asc").Find(&out).Error
	return out, err
}

func (r *ReferralRepository) SumAvailable(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.ReferralCredit{}).
		Where("user_id = ? AND used = ?", userID, false).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

// ConsumeForBooking marks unused credits as consumed, oldest first, until
// the requested amount is covered or the credits run out. Rows are locked
// for the duration; a consumed credit is never touched again.
func (r *ReferralRepository) ConsumeForBooking(ctx context.Context, userID, bookingID int64, amount float64) (float64, error) {
	var consumed float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var credits []domain.ReferralCredit
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND used = ?", userID, false).
			Order("created_at asc").Find(&credits).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, c := range credits {
			if consumed >= amount {
				break
			}
			if err := tx.Model(&domain.ReferralCredit{}).Where("id = ?", c.ID).Updates(map[string]any{
				"used":       true,
				"booking_id": bookingID,
				"used_at":    now,
			}).Error; err != nil {
				return err
			}
			consumed += c.Amount
		}
		return nil
	})
	return consumed, err
}
