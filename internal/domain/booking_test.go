package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled by student", StatusPending, StatusCancelledByStudent, true},
		{"pending to cancelled by mentor", StatusPending, StatusCancelledByMentor, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled by student", StatusConfirmed, StatusCancelledByStudent, true},
		{"confirmed to cancelled by mentor", StatusConfirmed, StatusCancelledByMentor, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusConfirmed, false},
		{"cancelled by student is terminal", StatusCancelledByStudent, StatusPending, false},
		{"cancelled by mentor is terminal", StatusCancelledByMentor, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelledByStudent}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelledByMentor}).IsActive())
}

func TestBooking_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelledByStudent}).CanBeCancelled())
}

func TestIsValidBookingStatus(t *testing.T) {
	assert.True(t, IsValidBookingStatus("pending"))
	assert.True(t, IsValidBookingStatus("cancelled_by_mentor"))
	assert.False(t, IsValidBookingStatus("cancelled"))
	assert.False(t, IsValidBookingStatus(""))
}
