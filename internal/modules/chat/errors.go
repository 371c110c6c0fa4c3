package chat

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message body is empty")
	ErrSelfConversation     = errors.New("cannot open a conversation with yourself")
)
