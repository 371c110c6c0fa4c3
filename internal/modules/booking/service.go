package booking

import (
	"context"
	"errors"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	bookings bookingRepo
	listings listingReader
	subs     applicationConsumer
	notifs   notifier
	loggerf  func(format string, args ...interface{})
}

func NewService(bookings bookingRepo, listings listingReader, subs applicationConsumer, notifs notifier, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{bookings: bookings, listings: listings, subs: subs, notifs: notifs, loggerf: loggerf}
}

// Create books a listing for the client at the listing's base price.
func (s *Service) Create(ctx context.Context, clientID int64, req CreateRequest) (*domain.Booking, error) {
	l, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !l.Active {
		return nil, ErrListingInactive
	}
	if l.MasterID == clientID {
		return nil, ErrOwnListing
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, ErrScheduleInPast
	}

	b := &domain.Booking{
		ClientID:    clientID,
		MasterID:    l.MasterID,
		ListingID:   l.ID,
		ScheduledAt: req.ScheduledAt,
		TotalPrice:  l.PriceBase,
		Status:      domain.BookingPending,
		Notes:       req.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=booking created booking_id=%d client_id=%d master_id=%d listing_id=%d", b.ID, clientID, l.MasterID, l.ID)

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, l.MasterID, b.ID)
	}
	return b, nil
}

// transitions the master may drive, in order.
var masterTransitions = map[domain.BookingStatus]domain.BookingStatus{
	domain.BookingConfirmed:  domain.BookingPending,
	domain.BookingInProgress: domain.BookingConfirmed,
	domain.BookingCompleted:  domain.BookingInProgress,
}

// SetStatus advances the booking through the master-driven part of the
// lifecycle. Confirming a pending booking spends one application slot; if
// the plan limit is hit the booking stays pending.
func (s *Service) SetStatus(ctx context.Context, masterID, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.getOwnedByMaster(ctx, masterID, bookingID)
	if err != nil {
		return nil, err
	}

	from, ok := masterTransitions[status]
	if !ok || b.Status != from {
		return nil, ErrInvalidTransition
	}

	if status == domain.BookingConfirmed && s.subs != nil {
		if err := s.subs.ConsumeApplication(ctx, masterID); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status
	s.loggerf("level=info msg=booking status changed booking_id=%d status=%s master_id=%d", bookingID, status, masterID)

	if s.notifs != nil {
		switch status {
		case domain.BookingConfirmed:
			_ = s.notifs.NotifyBookingConfirmed(ctx, b.ClientID, b.ID)
		case domain.BookingCompleted:
			_ = s.notifs.NotifyBookingCompleted(ctx, b.ClientID, b.ID)
		}
	}
	return b, nil
}

// Cancel is available to either party while the work has not started.
func (s *Service) Cancel(ctx context.Context, callerID, bookingID int64, reason string) error {
	if reason == "" {
		return ErrCancelReasonNeeded
	}
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}
	if callerID != b.ClientID && callerID != b.MasterID {
		return ErrBookingNotFound
	}
	switch b.Status {
	case domain.BookingCancelled:
		return ErrAlreadyCancelled
	case domain.BookingPending, domain.BookingConfirmed:
	default:
		return ErrInvalidTransition
	}

	if err := s.bookings.CancelWithReason(ctx, bookingID, reason); err != nil {
		return err
	}
	s.loggerf("level=info msg=booking cancelled booking_id=%d by=%d", bookingID, callerID)

	if s.notifs != nil {
		other := b.ClientID
		if callerID == b.ClientID {
			other = b.MasterID
		}
		_ = s.notifs.NotifyBookingCancelled(ctx, other, b.ID, reason)
	}
	return nil
}

// ConfirmCompletion is the client's sign-off on a completed booking. It is
// the precondition for releasing the escrowed payment.
func (s *Service) ConfirmCompletion(ctx context.Context, clientID, bookingID int64) error {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.ClientID != clientID {
		return ErrNotBookingClient
	}
	if b.Status != domain.BookingCompleted {
		return ErrNotCompleted
	}
	if b.ClientConfirmedAt != nil {
		return ErrAlreadyConfirmed
	}

	ok, err := s.bookings.ConfirmCompletion(ctx, bookingID, time.Now().UTC())
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyConfirmed
	}
	s.loggerf("level=info msg=booking completion confirmed booking_id=%d client_id=%d", bookingID, clientID)
	return nil
}

func (s *Service) Get(ctx context.Context, callerID, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if callerID != b.ClientID && callerID != b.MasterID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByClient(ctx, clientID, clampLimit(limit), offset)
}

func (s *Service) ListForMaster(ctx context.Context, masterID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByMaster(ctx, masterID, clampLimit(limit), offset)
}

func (s *Service) get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) getOwnedByMaster(ctx context.Context, masterID, bookingID int64) (*domain.Booking, error) {
	b, err := s.get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.MasterID != masterID {
		return nil, ErrNotBookingMaster
	}
	return b, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
