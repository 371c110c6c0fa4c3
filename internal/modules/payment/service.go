package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"ofiz/internal/domain"
	"ofiz/internal/gateway/mercadopago"
	"ofiz/internal/pkg/metrics"
	"ofiz/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultCommissionRate is the flat split applied when a checkout
// preference is registered. It is independent of the 5% platform fee the
// pricing calculator shows in client-facing quotes.
const defaultCommissionRate = 0.12

type Service struct {
	payments paymentRepo
	bookings bookingReader
	gateway  paymentGateway
	notifs   notifier
	credits  creditConsumer
	loggerf  func(format string, args ...interface{})

	commissionRate float64
}

func NewService(payments paymentRepo, bookings bookingReader, gateway paymentGateway, notifs notifier, credits creditConsumer, commissionRate float64, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if commissionRate <= 0 || commissionRate >= 1 {
		commissionRate = defaultCommissionRate
	}
	return &Service{
		payments:       payments,
		bookings:       bookings,
		gateway:        gateway,
		notifs:         notifs,
		credits:        credits,
		loggerf:        loggerf,
		commissionRate: commissionRate,
	}
}

// CreatePreference registers a pending payment for a booking and requests a
// hosted-checkout handle from MercadoPago. Only the booking's client may
// start a checkout; the caller is redirected to the returned init point.
func (s *Service) CreatePreference(ctx context.Context, callerID int64, req CreatePreferenceRequest) (*CreatePreferenceResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	booking, clientEmail, err := s.bookings.GetWithClientEmail(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.ClientID != callerID {
		return nil, ErrNotBookingClient
	}

	commission := round2(req.Amount * s.commissionRate)
	masterAmount := round2(req.Amount - commission)
	externalRef := uuid.NewString()

	// Credits are only read here; they are consumed after the gateway call
	// succeeds so a gateway failure leaves the balance untouched.
	var creditApplied float64
	if req.ApplyCredits && s.credits != nil {
		balance, err := s.credits.Balance(ctx, booking.ClientID)
		if err != nil {
			return nil, err
		}
		creditApplied = round2(math.Min(balance, req.Amount))
	}
	chargeAmount := round2(req.Amount - creditApplied)

	var pref *mercadopago.Preference
	if chargeAmount > 0 {
		pref, err = s.gateway.CreatePreference(ctx, mercadopago.PreferenceRequest{
			Title:       req.Title,
			Description: req.Description,
			Amount:      chargeAmount,
			PayerEmail:  clientEmail,
			ExternalRef: externalRef,
		})
		if err != nil {
			return nil, err
		}
	}

	if creditApplied > 0 {
		consumed, err := s.credits.ConsumeForBooking(ctx, booking.ClientID, booking.ID, creditApplied)
		if err != nil {
			// Same stance as the insert failure below: the orphaned
			// preference expires unused.
			s.loggerf("level=error msg=credit consume failed after preference created booking_id=%d err=%v", booking.ID, err)
			return nil, err
		}
		if consumed < creditApplied {
			s.loggerf("level=warn msg=credit balance shrank during checkout booking_id=%d wanted=%.2f consumed=%.2f", booking.ID, creditApplied, consumed)
			creditApplied = consumed
		}
	}

	p := &domain.Payment{
		BookingID:        booking.ID,
		Amount:           req.Amount,
		CommissionAmount: commission,
		MasterAmount:     masterAmount,
		Status:           domain.PaymentPending,
		ExternalRef:      externalRef,
	}
	if pref != nil {
		p.PreferenceID = pref.ID
	} else {
		// Credits covered the whole charge; there is nothing for the
		// gateway to collect.
		p.Status = domain.PaymentApproved
		p.StatusDetail = "covered_by_credits"
	}
	if err := s.payments.Create(ctx, p); err != nil {
		// The preference already exists on the gateway side; there is no
		// rollback call, so the orphaned preference simply expires unused.
		s.loggerf("level=error msg=payment insert failed after preference created booking_id=%d preference_id=%s err=%v", booking.ID, p.PreferenceID, err)
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	metrics.PaymentsCreated.Inc()
	s.loggerf("level=info msg=payment preference created booking_id=%d payment_id=%d preference_id=%s amount=%.2f credit=%.2f", booking.ID, p.ID, p.PreferenceID, req.Amount, creditApplied)

	resp := &CreatePreferenceResponse{
		PaymentID:     p.ID,
		CreditApplied: creditApplied,
	}
	if pref != nil {
		resp.PreferenceID = pref.ID
		resp.InitPoint = pref.InitPoint
	}
	return resp, nil
}

// Quote computes the price breakdown the client sees before paying. It
// reads the booking's base price and, when asked, the caller's unused
// referral credits. Nothing is charged or consumed.
func (s *Service) Quote(ctx context.Context, callerID int64, req QuoteRequest) (*pricing.Breakdown, error) {
	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.ClientID != callerID {
		return nil, ErrForbidden
	}

	var credits float64
	if req.ApplyCredits && s.credits != nil {
		if credits, err = s.credits.Balance(ctx, callerID); err != nil {
			return nil, err
		}
	}

	b := pricing.Calculate(pricing.Input{
		PriceBase:        booking.TotalPrice,
		PaymentType:      pricing.PaymentType(req.PaymentType),
		PaymentMethod:    req.PaymentMethod,
		Accreditation:    pricing.Accreditation(req.Accreditation),
		CreditsAvailable: credits,
	})
	return &b, nil
}

// ReleaseEscrow moves an approved payment to released once the client has
// confirmed completion. Preconditions are checked in order; each unmet one
// is a hard failure with no state change.
func (s *Service) ReleaseEscrow(ctx context.Context, callerID, bookingID int64) (*ReleaseResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Status != domain.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}
	if booking.ClientID != callerID {
		return nil, ErrNotBookingClient
	}
	if booking.ClientConfirmedAt == nil {
		return nil, ErrNotConfirmed
	}

	p, err := s.payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.Status != domain.PaymentApproved {
		return nil, ErrPaymentNotApproved
	}

	released, err := s.payments.ReleaseEscrow(ctx, p.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !released {
		// Lost the race against another release call; the payment is no
		// longer approved.
		return nil, ErrPaymentNotApproved
	}

	metrics.EscrowReleased.Inc()
	s.loggerf("level=info msg=escrow released booking_id=%d payment_id=%d master_amount=%.2f", bookingID, p.ID, p.MasterAmount)

	if s.notifs != nil {
		_ = s.notifs.NotifyEscrowReleased(ctx, booking.MasterID, booking.ID, p.MasterAmount)
	}

	return &ReleaseResponse{Success: true, Message: "funds released to the professional"}, nil
}

// VerifyStatus reconciles a local payment against the gateway's
// authoritative status on demand.
func (s *Service) VerifyStatus(ctx context.Context, callerID, paymentID int64) (*VerifyResponse, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if callerID != booking.ClientID && callerID != booking.MasterID {
		return nil, ErrForbidden
	}

	resp := &VerifyResponse{
		PaymentID:   p.ID,
		LocalStatus: string(p.Status),
		Amount:      p.Amount,
	}

	if p.MPPaymentID == "" {
		// Nothing to verify against yet; report the stored status as-is.
		return resp, nil
	}

	gw, err := s.gateway.GetPayment(ctx, p.MPPaymentID)
	if err != nil {
		return nil, err
	}
	resp.MercadoPagoStatus = gw.Status
	resp.MercadoPagoDetail = gw.StatusDetail

	mapped, ok := MapGatewayStatus(gw.Status)
	if !ok || mapped == p.Status {
		return resp, nil
	}

	if err := s.payments.UpdateFromGateway(ctx, p.ID, mapped, gw.StatusDetail, p.MPPaymentID); err != nil {
		return nil, err
	}
	resp.LocalStatus = string(mapped)
	resp.Updated = true
	s.loggerf("level=info msg=payment status reconciled payment_id=%d old=%s new=%s", p.ID, p.Status, mapped)
	return resp, nil
}

// HandleWebhook processes a gateway notification: the payment is re-fetched
// from the gateway and its status applied idempotently.
func (s *Service) HandleWebhook(ctx context.Context, n WebhookNotification) error {
	if n.Type != "payment" || n.Data.ID == "" {
		return nil
	}

	gw, err := s.gateway.GetPayment(ctx, n.Data.ID)
	if err != nil {
		return err
	}

	p, err := s.payments.GetByExternalRef(ctx, gw.ExternalReference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.loggerf("level=warn msg=webhook for unknown payment external_ref=%s mp_payment_id=%s", gw.ExternalReference, n.Data.ID)
			return ErrPaymentNotFound
		}
		return err
	}

	mapped, ok := MapGatewayStatus(gw.Status)
	metrics.WebhookEvents.WithLabelValues(gw.Status).Inc()
	if !ok {
		s.loggerf("level=warn msg=unmapped gateway status payment_id=%d mp_status=%s", p.ID, gw.Status)
		return nil
	}

	// Released is terminal; a late webhook must not roll it back.
	if p.Status == domain.PaymentReleased || p.Status == mapped {
		return nil
	}

	if err := s.payments.UpdateFromGateway(ctx, p.ID, mapped, gw.StatusDetail, strconv.FormatInt(gw.ID, 10)); err != nil {
		return err
	}
	s.loggerf("level=info msg=webhook applied payment_id=%d status=%s detail=%s", p.ID, mapped, gw.StatusDetail)

	if mapped == domain.PaymentApproved && s.notifs != nil {
		if booking, berr := s.bookings.GetByID(ctx, p.BookingID); berr == nil {
			_ = s.notifs.NotifyPaymentApproved(ctx, booking.ClientID, booking.ID)
		}
	}
	return nil
}

// MapGatewayStatus translates a MercadoPago payment status to the local
// one. Unknown statuses map to nothing and leave the record untouched.
func MapGatewayStatus(status string) (domain.PaymentStatus, bool) {
	switch status {
	case "approved":
		return domain.PaymentApproved, true
	case "pending", "in_process":
		return domain.PaymentPending, true
	case "rejected", "cancelled", "refunded":
		return domain.PaymentRejected, true
	}
	return "", false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
