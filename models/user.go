package models

import (
	"time"

	"gorm.io/gorm"
)

// Marketplace roles. Values match what clients send and what the role gates
// compare against.
const (
	RoleLooker   = "Looker"
	RoleProvider = "Provider"
	RoleAdmin    = "Admin"
)

// User represents a marketplace profile. The primary key is the subject the
// identity verifier resolved from the bearer token, so a profile is always
// keyed by a verified identity.
type User struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Role        string         `gorm:"not null;default:'Looker'" json:"role"` // Looker, Provider or Admin
	AvatarURL   string         `json:"avatar_url,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Address     string         `json:"address,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Skills      []string       `gorm:"serializer:json" json:"skills,omitempty"`
	Rating      float64        `gorm:"not null;default:0" json:"rating"`       // provider aggregate, recomputed on review submission
	ReviewCount int            `gorm:"not null;default:0" json:"review_count"` // provider aggregate
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// FavoriteProvider is one entry in a user's favorite-providers set. The unique
// index is what makes duplicate additions detectable.
type FavoriteProvider struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_user_favorite" json:"user_id"`
	ProviderID string    `gorm:"not null;uniqueIndex:idx_user_favorite" json:"provider_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the FavoriteProvider model
func (FavoriteProvider) TableName() string {
	return "favorite_providers"
}
