package models

import (
	"time"
)

// Badge is a catalog entry describing an achievement users can earn.
type Badge struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	IconURL     string    `json:"icon_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Badge model
func (Badge) TableName() string {
	return "badge_definitions"
}

// Achievement records that a user earned a badge. The unique index makes
// awarding idempotent.
type Achievement struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"user_id"`
	BadgeID  string    `gorm:"not null;uniqueIndex:idx_user_badge" json:"badge_id"`
	Badge    Badge     `gorm:"foreignKey:BadgeID" json:"badge"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

// TableName specifies the table name for the Achievement model
func (Achievement) TableName() string {
	return "achievements"
}

// DefaultBadges is the seed catalog. Ids are stable so awarding logic can
// reference them directly.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: "first_booking", Name: "First Booking", Description: "Completed a first booking"},
		{ID: "experienced", Name: "Experienced", Description: "Completed five bookings"},
		{ID: "silver", Name: "Silver", Description: "Completed ten bookings"},
		{ID: "first_review", Name: "First Review", Description: "Submitted a first review"},
	}
}
