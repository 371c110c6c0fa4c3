package notification

import (
	"context"

	"ofiz/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	UnreadCount(ctx context.Context, userID int64) (int64, error)
}

// pusher delivers to connected websocket clients; offline users read the
// stored row later.
type pusher interface {
	SendToUser(userID int64, message interface{}) bool
}
