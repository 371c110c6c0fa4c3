package chat

type OpenConversationRequest struct {
	WithUserID int64  `json:"with_user_id" binding:"required"`
	BookingID  *int64 `json:"booking_id"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

type TypingRequest struct {
	ConversationID int64 `json:"conversation_id" binding:"required"`
}

// wsEvent is the envelope pushed over the websocket.
type wsEvent struct {
	Kind           string `json:"kind"`
	ConversationID int64  `json:"conversation_id,omitempty"`
	SenderID       int64  `json:"sender_id,omitempty"`
	Body           string `json:"body,omitempty"`
	MessageID      int64  `json:"message_id,omitempty"`
}
