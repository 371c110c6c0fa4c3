package chat

import (
	"context"
	"time"

	"ofiz/internal/domain"
)

type chatRepo interface {
	GetOrCreateConversation(ctx context.Context, clientID, masterID int64, bookingID *int64) (*domain.Conversation, bool, error)
	GetConversation(ctx context.Context, id int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

// contactConsumer spends a contact unlock when a professional opens a
// conversation with a new client.
type contactConsumer interface {
	ConsumeContact(ctx context.Context, userID int64, audience domain.PlanAudience) error
}

type messageNotifier interface {
	NotifyNewMessage(ctx context.Context, recipientID, conversationID int64) error
}

// PresenceStore tracks short-lived typing indicators. Implemented in-memory
// for single-node runs and on Redis for multi-node ones.
type PresenceStore interface {
	SetTyping(ctx context.Context, conversationID, userID int64, ttl time.Duration) error
	IsTyping(ctx context.Context, conversationID, userID int64) (bool, error)
}
