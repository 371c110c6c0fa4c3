package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"ofiz/internal/domain"

	"gorm.io/gorm"
)

const typingTTL = 5 * time.Second

type Service struct {
	repo     chatRepo
	subs     contactConsumer
	notifs   messageNotifier
	hub      *Hub
	presence PresenceStore
	loggerf  func(format string, args ...interface{})
}

func NewService(repo chatRepo, subs contactConsumer, notifs messageNotifier, hub *Hub, presence PresenceStore, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, subs: subs, notifs: notifs, hub: hub, presence: presence, loggerf: loggerf}
}

// OpenConversation returns the conversation between the caller and the
// other party, creating it if needed. A professional opening a brand-new
// conversation spends one contact unlock from their plan.
func (s *Service) OpenConversation(ctx context.Context, callerID int64, callerRole domain.UserRole, req OpenConversationRequest) (*domain.Conversation, error) {
	if req.WithUserID == callerID {
		return nil, ErrSelfConversation
	}

	clientID, masterID := callerID, req.WithUserID
	professional := callerRole == domain.RoleMaster || callerRole == domain.RoleBusiness
	if professional {
		clientID, masterID = req.WithUserID, callerID
	}

	conv, created, err := s.repo.GetOrCreateConversation(ctx, clientID, masterID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if created && professional && s.subs != nil {
		if err := s.subs.ConsumeContact(ctx, callerID, domain.PlanAudience(callerRole)); err != nil {
			return nil, err
		}
	}
	if created {
		s.loggerf("level=info msg=conversation opened conversation_id=%d client_id=%d master_id=%d", conv.ID, clientID, masterID)
	}
	return conv, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.repo.ListConversations(ctx, userID)
}

// SendMessage stores the message and pushes it to both parties' sockets.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.participantConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	m := &domain.Message{ConversationID: conversationID, SenderID: senderID, Body: body}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	recipient := conv.ClientID
	if senderID == conv.ClientID {
		recipient = conv.MasterID
	}

	if s.hub != nil {
		event := wsEvent{Kind: "message", ConversationID: conversationID, SenderID: senderID, Body: body, MessageID: m.ID}
		_ = s.hub.SendToUser(senderID, event)
		delivered := s.hub.SendToUser(recipient, event)
		if !delivered && s.notifs != nil {
			_ = s.notifs.NotifyNewMessage(ctx, recipient, conversationID)
		}
	} else if s.notifs != nil {
		_ = s.notifs.NotifyNewMessage(ctx, recipient, conversationID)
	}
	return m, nil
}

func (s *Service) ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.Message, error) {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, userID, conversationID int64) error {
	if _, err := s.participantConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, conversationID, userID)
}

// Typing records a short-lived typing indicator and pushes it to the other
// party.
func (s *Service) Typing(ctx context.Context, userID, conversationID int64) error {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if s.presence != nil {
		if err := s.presence.SetTyping(ctx, conversationID, userID, typingTTL); err != nil {
			return err
		}
	}
	if s.hub != nil {
		other := conv.ClientID
		if userID == conv.ClientID {
			other = conv.MasterID
		}
		_ = s.hub.SendToUser(other, wsEvent{Kind: "typing", ConversationID: conversationID, SenderID: userID})
	}
	return nil
}

// OtherTyping reports whether the counterpart is currently typing.
func (s *Service) OtherTyping(ctx context.Context, userID, conversationID int64) (bool, error) {
	conv, err := s.participantConversation(ctx, userID, conversationID)
	if err != nil {
		return false, err
	}
	if s.presence == nil {
		return false, nil
	}
	other := conv.ClientID
	if userID == conv.ClientID {
		other = conv.MasterID
	}
	return s.presence.IsTyping(ctx, conversationID, other)
}

func (s *Service) participantConversation(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if userID != conv.ClientID && userID != conv.MasterID {
		return nil, ErrNotParticipant
	}
	return conv, nil
}
