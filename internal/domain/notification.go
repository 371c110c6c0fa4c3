package domain

import "time"

type NotificationType string

const (
	NotifyBookingCreated   NotificationType = "booking_created"
	NotifyBookingConfirmed NotificationType = "booking_confirmed"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyBookingCompleted NotificationType = "booking_completed"
	NotifyPaymentApproved  NotificationType = "payment_approved"
	NotifyEscrowReleased   NotificationType = "escrow_released"
	NotifyNewMessage       NotificationType = "new_message"
	NotifyCreditGranted    NotificationType = "credit_granted"
)

type Notification struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title     string           `json:"title"`
	Body      string           `gorm:"type:text" json:"body,omitempty"`
	Payload   string           `gorm:"type:text" json:"payload,omitempty"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Icon returns the UI icon name for a notification type. The switch is
// exhaustive over the declared types; new types must be added here.
func (t NotificationType) Icon() string {
	switch t {
	case NotifyBookingCreated:
		return "calendar-plus"
	case NotifyBookingConfirmed:
		return "calendar-check"
	case NotifyBookingCancelled:
		return "calendar-x"
	case NotifyBookingCompleted:
		return "check-circle"
	case NotifyPaymentApproved:
		return "credit-card"
	case NotifyEscrowReleased:
		return "banknote"
	case NotifyNewMessage:
		return "message-circle"
	case NotifyCreditGranted:
		return "gift"
	}
	return "bell"
}

func (t NotificationType) Color() string {
	switch t {
	case NotifyBookingCreated, NotifyBookingConfirmed:
		return "blue"
	case NotifyBookingCancelled:
		return "red"
	case NotifyBookingCompleted, NotifyPaymentApproved, NotifyEscrowReleased:
		return "green"
	case NotifyNewMessage:
		return "gray"
	case NotifyCreditGranted:
		return "purple"
	}
	return "gray"
}
