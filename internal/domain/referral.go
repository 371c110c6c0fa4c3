package domain

import "time"

// ReferralCredit is a monetary credit owned by a user. Once Used is set the
// row is immutable and stays associated with the consuming booking.
type ReferralCredit struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Used      bool       `gorm:"default:false;index" json:"used"`
	BookingID *int64     `json:"booking_id,omitempty"`
	Source    string     `gorm:"type:varchar(32)" json:"source,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (ReferralCredit) TableName() string { return "referral_credits" }
