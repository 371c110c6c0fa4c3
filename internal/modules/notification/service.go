package notification

import (
	"context"
	"fmt"

	"ofiz/internal/domain"
)

// Service stores notifications and pushes them to connected clients. It is
// the concrete implementation behind the notifier interfaces the other
// modules declare.
type Service struct {
	repo    notificationRepo
	hub     pusher
	loggerf func(format string, args ...interface{})
}

func NewService(repo notificationRepo, hub pusher, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, hub: hub, loggerf: loggerf}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, masterID, bookingID int64) error {
	return s.emit(ctx, masterID, domain.NotifyBookingCreated, "Nueva reserva",
		fmt.Sprintf("Tenés una nueva reserva #%d", bookingID), bookingID)
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, clientID, bookingID int64) error {
	return s.emit(ctx, clientID, domain.NotifyBookingConfirmed, "Reserva confirmada",
		fmt.Sprintf("Tu reserva #%d fue confirmada", bookingID), bookingID)
}

func (s *Service) NotifyBookingCompleted(ctx context.Context, clientID, bookingID int64) error {
	return s.emit(ctx, clientID, domain.NotifyBookingCompleted, "Trabajo finalizado",
		fmt.Sprintf("El profesional marcó la reserva #%d como finalizada. Confirmá para liberar el pago", bookingID), bookingID)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error {
	return s.emit(ctx, userID, domain.NotifyBookingCancelled, "Reserva cancelada",
		fmt.Sprintf("La reserva #%d fue cancelada: %s", bookingID, reason), bookingID)
}

func (s *Service) NotifyPaymentApproved(ctx context.Context, clientID, bookingID int64) error {
	return s.emit(ctx, clientID, domain.NotifyPaymentApproved, "Pago acreditado",
		fmt.Sprintf("El pago de la reserva #%d fue acreditado", bookingID), bookingID)
}

func (s *Service) NotifyEscrowReleased(ctx context.Context, masterID, bookingID int64, amount float64) error {
	return s.emit(ctx, masterID, domain.NotifyEscrowReleased, "Fondos liberados",
		fmt.Sprintf("Se liberaron $%.2f por la reserva #%d", amount, bookingID), bookingID)
}

func (s *Service) NotifyNewMessage(ctx context.Context, recipientID, conversationID int64) error {
	return s.emit(ctx, recipientID, domain.NotifyNewMessage, "Nuevo mensaje",
		fmt.Sprintf("Tenés un mensaje nuevo en la conversación #%d", conversationID), conversationID)
}

func (s *Service) emit(ctx context.Context, userID int64, typ domain.NotificationType, title, body string, refID int64) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Body:    body,
		Payload: fmt.Sprintf(`{"ref_id":%d}`, refID),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.hub != nil {
		delivered := s.hub.SendToUser(userID, map[string]any{
			"kind":  "notification",
			"id":    n.ID,
			"type":  typ,
			"title": title,
			"body":  body,
			"icon":  typ.Icon(),
			"color": typ.Color(),
		})
		if !delivered {
			s.loggerf("level=debug msg=notification stored for offline user user_id=%d type=%s", userID, typ)
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.UnreadCount(ctx, userID)
}
