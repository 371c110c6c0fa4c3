package chat

import (
	"context"
	"testing"
	"time"

	"ofiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatRepo struct {
	mock.Mock
}

func (m *MockChatRepo) GetOrCreateConversation(ctx context.Context, clientID, masterID int64, bookingID *int64) (*domain.Conversation, bool, error) {
	args := m.Called(ctx, clientID, masterID, bookingID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Conversation), args.Bool(1), args.Error(2)
}

func (m *MockChatRepo) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepo) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockChatRepo) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if msg != nil {
		msg.ID = 71
	}
	return args.Error(0)
}

func (m *MockChatRepo) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepo) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

type MockContactConsumer struct {
	mock.Mock
}

func (m *MockContactConsumer) ConsumeContact(ctx context.Context, userID int64, audience domain.PlanAudience) error {
	args := m.Called(ctx, userID, audience)
	return args.Error(0)
}

type MockMessageNotifier struct {
	mock.Mock
}

func (m *MockMessageNotifier) NotifyNewMessage(ctx context.Context, recipientID, conversationID int64) error {
	args := m.Called(ctx, recipientID, conversationID)
	return args.Error(0)
}

func conv() *domain.Conversation {
	return &domain.Conversation{ID: 5, ClientID: 10, MasterID: 20}
}

func TestOpenConversation_MasterConsumesContactOnNew(t *testing.T) {
	repo := new(MockChatRepo)
	subs := new(MockContactConsumer)

	repo.On("GetOrCreateConversation", mock.Anything, int64(10), int64(20), (*int64)(nil)).
		Return(conv(), true, nil)
	subs.On("ConsumeContact", mock.Anything, int64(20), domain.PlanForMaster).Return(nil)

	svc := NewService(repo, subs, nil, nil, nil, nil)
	c, err := svc.OpenConversation(context.Background(), 20, domain.RoleMaster, OpenConversationRequest{WithUserID: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 5, c.ID)
	subs.AssertExpectations(t)
}

func TestOpenConversation_ExistingSkipsConsumption(t *testing.T) {
	repo := new(MockChatRepo)
	subs := new(MockContactConsumer)

	repo.On("GetOrCreateConversation", mock.Anything, int64(10), int64(20), (*int64)(nil)).
		Return(conv(), false, nil)

	svc := NewService(repo, subs, nil, nil, nil, nil)
	_, err := svc.OpenConversation(context.Background(), 20, domain.RoleMaster, OpenConversationRequest{WithUserID: 10})
	require.NoError(t, err)
	subs.AssertNotCalled(t, "ConsumeContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenConversation_ClientDoesNotConsume(t *testing.T) {
	repo := new(MockChatRepo)
	subs := new(MockContactConsumer)

	repo.On("GetOrCreateConversation", mock.Anything, int64(10), int64(20), (*int64)(nil)).
		Return(conv(), true, nil)

	svc := NewService(repo, subs, nil, nil, nil, nil)
	_, err := svc.OpenConversation(context.Background(), 10, domain.RoleClient, OpenConversationRequest{WithUserID: 20})
	require.NoError(t, err)
	subs.AssertNotCalled(t, "ConsumeContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpenConversation_Self(t *testing.T) {
	svc := NewService(new(MockChatRepo), nil, nil, nil, nil, nil)
	_, err := svc.OpenConversation(context.Background(), 10, domain.RoleClient, OpenConversationRequest{WithUserID: 10})
	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestSendMessage_NotifiesOfflineRecipient(t *testing.T) {
	repo := new(MockChatRepo)
	notifs := new(MockMessageNotifier)

	repo.On("GetConversation", mock.Anything, int64(5)).Return(conv(), nil)
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.ConversationID == 5 && m.SenderID == 10 && m.Body == "hola"
	})).Return(nil)
	notifs.On("NotifyNewMessage", mock.Anything, int64(20), int64(5)).Return(nil)

	svc := NewService(repo, nil, notifs, nil, nil, nil)
	m, err := svc.SendMessage(context.Background(), 10, 5, "  hola  ")
	require.NoError(t, err)
	assert.EqualValues(t, 71, m.ID)
	notifs.AssertExpectations(t)
}

func TestSendMessage_EmptyBody(t *testing.T) {
	svc := NewService(new(MockChatRepo), nil, nil, nil, nil, nil)
	_, err := svc.SendMessage(context.Background(), 10, 5, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessage_NonParticipant(t *testing.T) {
	repo := new(MockChatRepo)
	repo.On("GetConversation", mock.Anything, int64(5)).Return(conv(), nil)

	svc := NewService(repo, nil, nil, nil, nil, nil)
	_, err := svc.SendMessage(context.Background(), 999, 5, "hola")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestMemoryPresence_Expiry(t *testing.T) {
	p := NewMemoryPresence()
	ctx := context.Background()

	require.NoError(t, p.SetTyping(ctx, 5, 10, 30*time.Millisecond))
	typing, err := p.IsTyping(ctx, 5, 10)
	require.NoError(t, err)
	assert.True(t, typing)

	time.Sleep(50 * time.Millisecond)
	typing, err = p.IsTyping(ctx, 5, 10)
	require.NoError(t, err)
	assert.False(t, typing)
}

func TestTyping_UsesPresenceStore(t *testing.T) {
	repo := new(MockChatRepo)
	repo.On("GetConversation", mock.Anything, int64(5)).Return(conv(), nil)

	p := NewMemoryPresence()
	svc := NewService(repo, nil, nil, nil, p, nil)
	require.NoError(t, svc.Typing(context.Background(), 10, 5))

	typing, err := svc.OtherTyping(context.Background(), 20, 5)
	require.NoError(t, err)
	assert.True(t, typing)
}
