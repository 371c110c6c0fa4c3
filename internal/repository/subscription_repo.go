package repository

import (
	"context"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) ListPlans(ctx context.Context, audience domain.PlanAudience) ([]domain.Plan, error) {
	var plans []domain.Plan
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order("price asc")
	if audience != "" {
		q = q.Where("audience = ?", audience)
	}
	err := q.Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepository) GetPlan(ctx context.Context, id domain.PlanID) (*domain.Plan, error) {
	var plan domain.Plan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepository) GetActiveByUserID(ctx context.Context, userID int64) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.SubscriptionActive).
		Order("created_at desc").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Cancel marks any active subscription of the user as cancelled. Used when
// a new paid period replaces the current one.
func (r *SubscriptionRepository) Cancel(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("user_id = ? AND status = ?", userID, domain.SubscriptionActive).
		Update("status", domain.SubscriptionCancelled).Error
}

// ConsumeResult reports the outcome of a check-and-increment on a usage
// counter.
type ConsumeResult struct {
	Allowed bool
	Used    int
	Limit   int
	PlanID  domain.PlanID
}

// ConsumeApplication atomically increments the applications counter if the
// plan limit allows it.
func (r *SubscriptionRepository) ConsumeApplication(ctx context.Context, userID int64) (*ConsumeResult, error) {
	return r.consume(ctx, userID, "applications_used", func(p *domain.Plan) int { return p.ApplicationsLimit },
		func(s *domain.Subscription) int { return s.ApplicationsUsed })
}

// ConsumeContact atomically increments the contacts counter if the plan
// limit allows it.
func (r *SubscriptionRepository) ConsumeContact(ctx context.Context, userID int64) (*ConsumeResult, error) {
	return r.consume(ctx, userID, "contacts_used", func(p *domain.Plan) int { return p.ContactsLimit },
		func(s *domain.Subscription) int { return s.ContactsUsed })
}

// consume locks the active subscription row, compares the counter against
// the plan limit and increments it in the same transaction. Read-check-write
// outside a lock would let concurrent requests overrun the limit.
func (r *SubscriptionRepository) consume(ctx context.Context, userID int64, column string, limitOf func(*domain.Plan) int, usedOf func(*domain.Subscription) int) (*ConsumeResult, error) {
	var res ConsumeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub domain.Subscription
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ?", userID, domain.SubscriptionActive).
			Order("created_at desc").
			First(&sub).Error; err != nil {
			return err
		}

		var plan domain.Plan
		if err := tx.Where("id = ?", sub.PlanID).First(&plan).Error; err != nil {
			return err
		}

		limit := limitOf(&plan)
		used := usedOf(&sub)
		res = ConsumeResult{Used: used, Limit: limit, PlanID: plan.ID}
		if limit != -1 && used >= limit {
			return nil
		}

		if err := tx.Model(&domain.Subscription{}).Where("id = ?", sub.ID).
			Update(column, gorm.Expr(column+" + 1")).Error; err != nil {
			return err
		}
		res.Allowed = true
		res.Used = used + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ExpireOverdue flips active subscriptions past their expiry to expired.
// Called from the background ticker.
func (r *SubscriptionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("status = ? AND expires_at < ?", domain.SubscriptionActive, now).
		Update("status", domain.SubscriptionExpired)
	return result.RowsAffected, result.Error
}
