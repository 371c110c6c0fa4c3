package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentInEscrow PaymentStatus = "in_escrow"
	PaymentReleased PaymentStatus = "released"
	PaymentRejected PaymentStatus = "rejected"
	PaymentFailed   PaymentStatus = "failed"
)

// Payment is one monetary transaction tied to a booking. The invariant
// Amount = CommissionAmount + MasterAmount holds at creation time; status
// moves pending → approved → released and only forward.
type Payment struct {
	ID               int64         `gorm:"primaryKey" json:"id"`
	BookingID        int64         `gorm:"index;not null" json:"booking_id"`
	Amount           float64       `gorm:"not null" json:"amount"`
	CommissionAmount float64       `gorm:"not null" json:"commission_amount"`
	MasterAmount     float64       `gorm:"not null" json:"master_amount"`
	Status           PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PreferenceID     string        `gorm:"type:varchar(128);index" json:"preference_id,omitempty"`
	MPPaymentID      string        `gorm:"type:varchar(64);index" json:"mp_payment_id,omitempty"`
	ExternalRef      string        `gorm:"type:varchar(64);uniqueIndex" json:"external_ref"`
	StatusDetail     string        `gorm:"type:varchar(64)" json:"status_detail,omitempty"`
	EscrowReleasedAt *time.Time    `json:"escrow_released_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "pending"
	CommissionProcessed CommissionStatus = "processed"
)

// Commission is the platform's ledger entry for its cut of a payment.
// It is processed in lockstep with escrow release.
type Commission struct {
	ID          int64            `gorm:"primaryKey" json:"id"`
	PaymentID   int64            `gorm:"uniqueIndex;not null" json:"payment_id"`
	Amount      float64          `gorm:"not null" json:"amount"`
	Status      CommissionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (Commission) TableName() string { return "commissions" }
