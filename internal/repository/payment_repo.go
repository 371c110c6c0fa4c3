package repository

import (
	"context"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment and its commission ledger row in one
// transaction so the two never diverge at birth.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Commission{
			PaymentID: p.ID,
			Amount:    p.CommissionAmount,
			Status:    domain.CommissionPending,
		}).Error
	})
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).
		Order("created_at desc").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByExternalRef(ctx context.Context, ref string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("external_ref = ?", ref).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetCommission(ctx context.Context, paymentID int64) (*domain.Commission, error) {
	var c domain.Commission
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateFromGateway persists the status reported by the gateway along with
// the gateway's own payment id and status detail.
func (r *PaymentRepository) UpdateFromGateway(ctx context.Context, id int64, status domain.PaymentStatus, detail, mpPaymentID string) error {
	updates := map[string]any{
		"status":        status,
		"status_detail": detail,
	}
	if mpPaymentID != "" {
		updates["mp_payment_id"] = mpPaymentID
	}
	return r.db.WithContext(ctx).Model(&domain.Payment{}).Where("id = ?", id).Updates(updates).Error
}

// ReleaseEscrow moves an approved payment to released and processes its
// commission in a single transaction. The payment row is locked so two
// concurrent release calls cannot both succeed; returns false when the
// payment was not in the approved state.
func (r *PaymentRepository) ReleaseEscrow(ctx context.Context, paymentID int64, at time.Time) (bool, error) {
	released := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, paymentID).Error; err != nil {
			return err
		}
		if p.Status != domain.PaymentApproved {
			return nil
		}

		if err := tx.Model(&domain.Payment{}).Where("id = ?", p.ID).Updates(map[string]any{
			"status":             domain.PaymentReleased,
			"escrow_released_at": at,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Commission{}).Where("payment_id = ?", p.ID).Updates(map[string]any{
			"status":       domain.CommissionProcessed,
			"processed_at": at,
		}).Error; err != nil {
			return err
		}
		released = true
		return nil
	})
	return released, err
}

func (r *PaymentRepository) List(ctx context.Context, status domain.PaymentStatus, limit, offset int) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{}).Order("created_at desc").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Payment
	err := q.Find(&out).Error
	return out, err
}
