package repository

import (
	"context"
	"errors"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// GetOrCreateConversation returns the conversation between the two parties,
// creating it when none exists. The bool reports whether a new row was made.
func (r *ChatRepository) GetOrCreateConversation(ctx context.Context, clientID, masterID int64, bookingID *int64) (*domain.Conversation, bool, error) {
	var conv domain.Conversation
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND master_id = ?", clientID, masterID).
		First(&conv).Error
	if err == nil {
		return &conv, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	conv = domain.Conversation{ClientID: clientID, MasterID: masterID, BookingID: bookingID}
	if err := r.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, false, err
	}
	return &conv, true, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	var conv domain.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("client_id = ? OR master_id = ?", userID, userID).
		Order("updated_at desc").Find(&out).Error
	return out, err
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Conversation{}).Where("id = ?", m.ConversationID).
			Update("updated_at", time.Now()).Error
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).
		Order("created_at desc").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", now).Error
}
