package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeBooking(status BookingStatus) *Booking {
	return &Booking{
		ID:         "b1",
		LookerID:   "looker1",
		ProviderID: "provider1",
		Status:     status,
	}
}

func TestTransitionConfirm(t *testing.T) {
	tests := []struct {
		name       string
		status     BookingStatus
		caller     string
		wantStatus BookingStatus
		wantErr    error
	}{
		{"provider confirms pending booking", BookingPendingConfirmation, "provider1", BookingAwaitingReservation, nil},
		{"looker cannot confirm", BookingPendingConfirmation, "looker1", "", ErrWrongCaller},
		{"stranger cannot confirm", BookingPendingConfirmation, "other", "", ErrNotParticipant},
		{"cannot confirm from awaiting_reservation", BookingAwaitingReservation, "provider1", "", ErrInvalidTransition},
		{"cannot confirm completed booking", BookingCompleted, "provider1", "", ErrInvalidTransition},
		{"cannot confirm cancelled booking", BookingCancelled, "provider1", "", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := makeBooking(tt.status)
			got, err := b.Transition(OpConfirm, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got)
			// The gate never mutates the booking itself.
			assert.Equal(t, tt.status, b.Status)
		})
	}
}

func TestTransitionCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		caller  string
		wantErr error
	}{
		{"looker cancels pending booking", BookingPendingConfirmation, "looker1", nil},
		{"provider cancels pending booking", BookingPendingConfirmation, "provider1", nil},
		{"cancel from awaiting_reservation", BookingAwaitingReservation, "looker1", nil},
		{"cannot cancel completed booking", BookingCompleted, "looker1", ErrInvalidTransition},
		{"cannot cancel cancelled booking", BookingCancelled, "provider1", ErrInvalidTransition},
		{"stranger cannot cancel", BookingPendingConfirmation, "other", ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := makeBooking(tt.status)
			got, err := b.Transition(OpCancel, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, BookingCancelled, got)
		})
	}
}

func TestTransitionComplete(t *testing.T) {
	tests := []struct {
		name    string
		status  BookingStatus
		caller  string
		wantErr error
	}{
		{"provider completes confirmed booking", BookingAwaitingReservation, "provider1", nil},
		{"provider completes pending booking", BookingPendingConfirmation, "provider1", nil},
		{"provider completes cancelled booking", BookingCancelled, "provider1", nil},
		{"cannot complete twice", BookingCompleted, "provider1", ErrInvalidTransition},
		{"looker cannot complete", BookingAwaitingReservation, "looker1", ErrWrongCaller},
		{"stranger cannot complete", BookingAwaitingReservation, "other", ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := makeBooking(tt.status)
			got, err := b.Transition(OpComplete, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, BookingCompleted, got)
		})
	}
}

func TestPaymentTransition(t *testing.T) {
	tests := []struct {
		name    string
		payment PaymentStatus
		target  PaymentStatus
		caller  string
		wantErr error
	}{
		{"looker authorizes pending payment", PaymentPendingAuthorization, PaymentAuthorized, "looker1", nil},
		{"provider cannot authorize", PaymentPendingAuthorization, PaymentAuthorized, "provider1", ErrWrongCaller},
		{"cannot authorize twice", PaymentAuthorized, PaymentAuthorized, "looker1", ErrInvalidTransition},
		{"provider captures authorized payment", PaymentAuthorized, PaymentCaptured, "provider1", nil},
		{"looker cannot capture", PaymentAuthorized, PaymentCaptured, "looker1", ErrWrongCaller},
		{"cannot capture before authorization", PaymentPendingAuthorization, PaymentCaptured, "provider1", ErrInvalidTransition},
		{"stranger cannot touch payment", PaymentPendingAuthorization, PaymentAuthorized, "other", ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := makeBooking(BookingAwaitingReservation)
			b.PaymentStatus = tt.payment
			got, err := b.PaymentTransition(tt.target, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.target, got)
		})
	}
}

func TestIsParticipant(t *testing.T) {
	b := makeBooking(BookingPendingConfirmation)

	assert.True(t, b.IsParticipant("looker1"))
	assert.True(t, b.IsParticipant("provider1"))
	assert.False(t, b.IsParticipant("other"))
}

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []RequestStatus{RequestPending, RequestMatched, RequestCancelled, RequestFulfilled} {
		assert.True(t, ValidRequestStatus(s))
	}
	assert.False(t, ValidRequestStatus("open"))
	assert.False(t, ValidRequestStatus(""))
}
