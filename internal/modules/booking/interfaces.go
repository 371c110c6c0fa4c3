package booking

import (
	"context"
	"time"

	"ofiz/internal/domain"
)

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CancelWithReason(ctx context.Context, id int64, reason string) error
	ConfirmCompletion(ctx context.Context, id int64, at time.Time) (bool, error)
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error)
	ListByMaster(ctx context.Context, masterID int64, limit, offset int) ([]domain.Booking, error)
}

type listingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// applicationConsumer spends one subscription application slot when a
// master takes on a booking.
type applicationConsumer interface {
	ConsumeApplication(ctx context.Context, userID int64) error
}

type notifier interface {
	NotifyBookingCreated(ctx context.Context, masterID, bookingID int64) error
	NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error
	NotifyBookingCompleted(ctx context.Context, clientID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error
}
