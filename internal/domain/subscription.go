package domain

import "time"

type PlanID string

const (
	PlanMasterFree    PlanID = "master_free"
	PlanMasterPro     PlanID = "master_pro"
	PlanMasterPremium PlanID = "master_premium"

	PlanBusinessStandard PlanID = "business_standard"
	PlanBusinessPremium  PlanID = "business_premium"
)

type PlanAudience string

const (
	PlanForMaster   PlanAudience = "master"
	PlanForBusiness PlanAudience = "business"
)

// Plan is a subscription tier. Limits of -1 mean unlimited.
type Plan struct {
	ID       PlanID       `gorm:"type:varchar(32);primaryKey" json:"id"`
	Audience PlanAudience `gorm:"type:varchar(16);not null;index" json:"audience"`
	Name     string       `gorm:"type:varchar(64);not null" json:"name"`
	Price    float64      `gorm:"not null" json:"price"`

	ApplicationsLimit int `gorm:"not null" json:"applications_limit"`
	ContactsLimit     int `gorm:"not null" json:"contacts_limit"`

	IsFeatured bool `json:"is_featured"`
	CanPostAds bool `json:"can_post_ads"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (Plan) TableName() string { return "subscription_plans" }

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription tracks a paid plan period and its usage counters. The
// counters are only mutated inside a row-locked transaction so a burst of
// concurrent consuming actions cannot push usage past the plan limit.
type Subscription struct {
	ID     string             `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID int64              `gorm:"not null;index" json:"user_id"`
	PlanID PlanID             `gorm:"type:varchar(32);not null" json:"plan_id"`
	Status SubscriptionStatus `gorm:"type:varchar(16);default:'active';index" json:"status"`

	ApplicationsUsed int `gorm:"default:0" json:"applications_used"`
	ContactsUsed     int `gorm:"default:0" json:"contacts_used"`

	PaymentID string    `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
