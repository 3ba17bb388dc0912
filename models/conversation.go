package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation groups messages between a fixed set of participants. The
// participant set is closed at creation; every read or write of its messages
// checks membership against it.
type Conversation struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	ParticipantIDs []string       `gorm:"serializer:json" json:"participant_ids"`
	BookingID      *string        `json:"booking_id,omitempty"`
	LastMessageID  *string        `json:"last_message_id,omitempty"` // denormalized, updated with each message insert
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate assigns an opaque document id.
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is one entry in a conversation. At least one of Text and ImageURL
// must be set; the controller enforces that before insert.
type Message struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	ConversationID string         `gorm:"not null;index" json:"conversation_id"`
	SenderID       string         `gorm:"not null;index" json:"sender_id"`
	Text           string         `json:"text,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	Read           bool           `gorm:"not null;default:false" json:"read"`
	SystemMessage  bool           `gorm:"not null;default:false" json:"system_message"`
	CreatedAt      time.Time      `json:"timestamp"`
	UpdatedAt      time.Time      `json:"-"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns an opaque document id.
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
