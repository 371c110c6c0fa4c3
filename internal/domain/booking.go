package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Booking is a scheduled engagement between a client and a master for a
// service listing. Rows are never deleted; cancellation is a status.
type Booking struct {
	ID                int64         `gorm:"primaryKey" json:"id"`
	ClientID          int64         `gorm:"index;not null" json:"client_id"`
	MasterID          int64         `gorm:"index;not null" json:"master_id"`
	ListingID         int64         `gorm:"index;not null" json:"listing_id"`
	ScheduledAt       time.Time     `gorm:"not null" json:"scheduled_at"`
	TotalPrice        float64       `gorm:"not null" json:"total_price"`
	Status            BookingStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ClientConfirmedAt *time.Time    `json:"client_confirmed_at,omitempty"`
	CancelReason      string        `gorm:"type:text" json:"cancel_reason,omitempty"`
	Notes             string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	CancelledAt       *time.Time    `json:"cancelled_at,omitempty"`
}

func (Booking) TableName() string { return "bookings" }
