package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry owned by exactly one provider.
type Service struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	ProviderID     string         `gorm:"not null;index" json:"provider_id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description,omitempty"`
	Price          float64        `gorm:"not null" json:"price"`
	Duration       int            `gorm:"not null" json:"duration"` // minutes
	Category       string         `gorm:"not null;index" json:"category"`
	ImageURL       string         `json:"image_url,omitempty"`
	AvailableDays  []string       `gorm:"serializer:json" json:"available_days,omitempty"`
	AvailableTimes []string       `gorm:"serializer:json" json:"available_times,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// BeforeCreate assigns an opaque document id.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
