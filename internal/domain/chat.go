package domain

import "time"

type Conversation struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BookingID *int64    `gorm:"index" json:"booking_id,omitempty"`
	ClientID  int64     `gorm:"index;not null" json:"client_id"`
	MasterID  int64     `gorm:"index;not null" json:"master_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Conversation) TableName() string { return "conversations" }

type Message struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	ConversationID int64      `gorm:"index;not null" json:"conversation_id"`
	SenderID       int64      `gorm:"index;not null" json:"sender_id"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
