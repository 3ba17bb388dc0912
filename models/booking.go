package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	BookingPendingConfirmation BookingStatus = "pending_provider_confirmation"
	BookingAwaitingReservation BookingStatus = "awaiting_reservation"
	BookingCompleted           BookingStatus = "completed"
	BookingCancelled           BookingStatus = "cancelled"
)

// PaymentStatus enumerates the payment lifecycle, parallel to BookingStatus.
type PaymentStatus string

const (
	PaymentPendingAuthorization PaymentStatus = "pending_authorization"
	PaymentAuthorized           PaymentStatus = "authorized"
	PaymentCaptured             PaymentStatus = "captured"
)

// BookingOp identifies a status transition requested against a booking.
type BookingOp string

const (
	OpConfirm  BookingOp = "confirm"
	OpCancel   BookingOp = "cancel"
	OpComplete BookingOp = "complete"
)

var (
	// ErrNotParticipant means the caller is neither looker nor provider.
	ErrNotParticipant = errors.New("caller is not a participant in this booking")
	// ErrWrongCaller means the caller is a participant but the wrong one for this operation.
	ErrWrongCaller = errors.New("caller is not permitted to perform this operation")
	// ErrInvalidTransition means the booking's current status does not allow the operation.
	ErrInvalidTransition = errors.New("booking status does not allow this transition")
)

// BookedService is one line item of a booking: a service and an optional location.
type BookedService struct {
	ServiceID string `json:"service_id" binding:"required"`
	Location  string `json:"location,omitempty"`
}

// Booking represents one engagement between a looker and a provider.
// LookerID and ProviderID are immutable after creation; Status moves only
// through the transition table below.
type Booking struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	LookerID      string          `gorm:"not null;index" json:"looker_id"`
	ProviderID    string          `gorm:"not null;index" json:"provider_id"`
	Services      []BookedService `gorm:"serializer:json" json:"services"`
	ServiceIDs    []string        `gorm:"serializer:json" json:"service_ids"` // derived from Services at creation
	DateTime      string          `gorm:"not null" json:"date_time"`
	CustomRequest string          `json:"custom_request,omitempty"`
	Status        BookingStatus   `gorm:"not null;default:'pending_provider_confirmation';index" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"not null;default:'pending_authorization'" json:"payment_status"`
	BasePrice     float64         `gorm:"not null;default:0" json:"base_price"`
	TipAmount     float64         `gorm:"not null;default:0" json:"tip_amount"`
	TotalPrice    float64         `gorm:"not null;default:0" json:"total_price"`
	ReviewID      *string         `json:"review_id,omitempty"` // set at most once, only when completed
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns an opaque document id.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// IsParticipant reports whether userID is the booking's looker or provider.
func (b *Booking) IsParticipant(userID string) bool {
	return userID == b.LookerID || userID == b.ProviderID
}

// bookingTransition is one row of the lifecycle transition table.
type bookingTransition struct {
	to           BookingStatus
	providerOnly bool // false: looker or provider may invoke
	allowedFrom  func(BookingStatus) bool
}

// bookingTransitions is the single source of truth for the booking lifecycle.
// Every handler consults it through Transition; no handler compares status
// strings inline.
var bookingTransitions = map[BookingOp]bookingTransition{
	OpConfirm: {
		to:           BookingAwaitingReservation,
		providerOnly: true,
		allowedFrom:  func(s BookingStatus) bool { return s == BookingPendingConfirmation },
	},
	OpCancel: {
		to:           BookingCancelled,
		providerOnly: false,
		allowedFrom:  func(s BookingStatus) bool { return s != BookingCompleted && s != BookingCancelled },
	},
	OpComplete: {
		to:           BookingCompleted,
		providerOnly: true,
		allowedFrom:  func(s BookingStatus) bool { return s != BookingCompleted },
	},
}

// Transition decides whether callerID may apply op given the booking's current
// status, and returns the resulting status. It never mutates the booking; the
// store applies the result with a conditional update keyed on the status the
// caller observed.
func (b *Booking) Transition(op BookingOp, callerID string) (BookingStatus, error) {
	rule, ok := bookingTransitions[op]
	if !ok {
		return "", fmt.Errorf("unknown booking operation %q", op)
	}

	if !b.IsParticipant(callerID) {
		return "", ErrNotParticipant
	}
	if rule.providerOnly && callerID != b.ProviderID {
		return "", ErrWrongCaller
	}
	if !rule.allowedFrom(b.Status) {
		return "", fmt.Errorf("%w: cannot %s a booking in %s status", ErrInvalidTransition, op, b.Status)
	}

	return rule.to, nil
}

// PaymentTransition decides whether callerID may move the payment status
// forward and returns the resulting payment status. Authorization is the
// looker's move, capture the provider's.
func (b *Booking) PaymentTransition(target PaymentStatus, callerID string) (PaymentStatus, error) {
	if !b.IsParticipant(callerID) {
		return "", ErrNotParticipant
	}

	switch target {
	case PaymentAuthorized:
		if callerID != b.LookerID {
			return "", ErrWrongCaller
		}
		if b.PaymentStatus != PaymentPendingAuthorization {
			return "", fmt.Errorf("%w: payment is %s, expected %s", ErrInvalidTransition, b.PaymentStatus, PaymentPendingAuthorization)
		}
	case PaymentCaptured:
		if callerID != b.ProviderID {
			return "", ErrWrongCaller
		}
		if b.PaymentStatus != PaymentAuthorized {
			return "", fmt.Errorf("%w: payment is %s, expected %s", ErrInvalidTransition, b.PaymentStatus, PaymentAuthorized)
		}
	default:
		return "", fmt.Errorf("unknown payment status %q", target)
	}

	return target, nil
}
