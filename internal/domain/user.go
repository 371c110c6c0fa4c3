package domain

import "time"

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleMaster   UserRole = "master"
	RoleBusiness UserRole = "business"
	RoleAdmin    UserRole = "admin"
)

type MasterStatus string

const (
	MasterPending  MasterStatus = "pending"
	MasterVerified MasterStatus = "verified"
	MasterRejected MasterStatus = "rejected"
	MasterBlocked  MasterStatus = "blocked"
)

type User struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Role         UserRole     `gorm:"type:varchar(20);index" json:"role"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone,omitempty"`
	City         string       `json:"city,omitempty"`
	MasterStatus MasterStatus `gorm:"type:varchar(20)" json:"master_status,omitempty"`
	ReferralCode string       `gorm:"type:varchar(16);uniqueIndex" json:"referral_code,omitempty"`
	ReferredBy   *int64       `json:"referred_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// MasterProfile holds the professional-facing data for a user with role=master.
type MasterProfile struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	UserID         int64      `gorm:"uniqueIndex;not null" json:"user_id"`
	Headline       string     `json:"headline,omitempty"`
	Bio            string     `gorm:"type:text" json:"bio,omitempty"`
	Category       string     `gorm:"index" json:"category,omitempty"`
	RatingAvg      float64    `json:"rating_avg"`
	JobsCompleted  int        `json:"jobs_completed"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`
	VerifiedBy     *int64     `json:"verified_by,omitempty"`
	RejectedReason string     `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (MasterProfile) TableName() string { return "master_profiles" }
