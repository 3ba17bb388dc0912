package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus enumerates marketplace request states. Unlike bookings there
// is no transition guard beyond caller-role checks; any Provider or Admin may
// set any status.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestMatched   RequestStatus = "matched"
	RequestCancelled RequestStatus = "cancelled"
	RequestFulfilled RequestStatus = "fulfilled"
)

// ValidRequestStatus reports whether s is a known marketplace request status.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestMatched, RequestCancelled, RequestFulfilled:
		return true
	}
	return false
}

// MarketplaceRequest is a looker's open call for a provider in an area,
// independent of any booking.
type MarketplaceRequest struct {
	ID                string         `gorm:"primaryKey" json:"id"`
	LookerID          string         `gorm:"not null;index" json:"looker_id"`
	ServiceName       string         `gorm:"not null" json:"service_name"`
	Area              string         `gorm:"not null;index" json:"area"`
	Notes             string         `json:"notes,omitempty"`
	NotificationOptIn bool           `gorm:"not null;default:false" json:"notification_opt_in"`
	Status            RequestStatus  `gorm:"not null;default:'pending';index" json:"status"`
	MatchedProviderID *string        `json:"matched_provider_id,omitempty"` // set when a provider marks the request matched
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MarketplaceRequest model
func (MarketplaceRequest) TableName() string {
	return "marketplace_requests"
}

// BeforeCreate assigns an opaque document id.
func (m *MarketplaceRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
