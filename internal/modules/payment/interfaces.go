package payment

import (
	"context"
	"time"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithClientEmail(ctx context.Context, id int64) (*domain.Booking, string, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	GetByExternalRef(ctx context.Context, ref string) (*domain.Payment, error)
	UpdateFromGateway(ctx context.Context, id int64, status domain.PaymentStatus, detail, mpPaymentID string) error
	ReleaseEscrow(ctx context.Context, paymentID int64, at time.Time) (bool, error)
}

type paymentGateway interface {
	CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

// creditConsumer spends the client's referral credits against the booking
// before the gateway charge is registered.
type creditConsumer interface {
	Balance(ctx context.Context, userID int64) (float64, error)
	ConsumeForBooking(ctx context.Context, userID, bookingID int64, amount float64) (float64, error)
}

type notifier interface {
	NotifyPaymentApproved(ctx context.Context, clientID, bookingID int64) error
	NotifyEscrowReleased(ctx context.Context, masterID, bookingID int64, amount float64) error
}
