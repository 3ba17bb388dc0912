package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRatings carries the optional per-category scores of a review.
// Each score, when present, is a 1-5 integer.
type CategoryRatings struct {
	Cleanliness     *int `json:"cleanliness,omitempty" binding:"omitempty,min=1,max=5"`
	Punctuality     *int `json:"punctuality,omitempty" binding:"omitempty,min=1,max=5"`
	Skill           *int `json:"skill,omitempty" binding:"omitempty,min=1,max=5"`
	Professionalism *int `json:"professionalism,omitempty" binding:"omitempty,min=1,max=5"`
}

// Review is one-to-one with a completed booking. Uniqueness is enforced
// through the booking's ReviewID back-reference, set in the same transaction
// that inserts the review.
type Review struct {
	ID              string           `gorm:"primaryKey" json:"id"`
	BookingID       string           `gorm:"not null;uniqueIndex" json:"booking_id"`
	LookerID        string           `gorm:"not null;index" json:"looker_id"`
	ProviderID      string           `gorm:"not null;index" json:"provider_id"`
	OverallRating   int              `gorm:"not null" json:"overall_rating"`
	Text            string           `json:"text,omitempty"`
	ImageURLs       []string         `gorm:"serializer:json" json:"image_urls,omitempty"`
	CategoryRatings *CategoryRatings `gorm:"serializer:json" json:"category_ratings,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate assigns an opaque document id.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
