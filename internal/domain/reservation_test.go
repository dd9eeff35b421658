package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationStatus_Valid(t *testing.T) {
	assert.True(t, StatusConfirmed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusNoShow.Valid())
	assert.False(t, ReservationStatus("pending").Valid())
	assert.False(t, ReservationStatus("").Valid())
}

func TestReservationStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
	assert.False(t, ReservationStatus("garbage").IsTerminal())
}

func TestParseReservationStatus(t *testing.T) {
	status, err := ParseReservationStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)

	_, err = ParseReservationStatus("noshow")
	assert.Error(t, err)
}

func TestReservation_CanTransition(t *testing.T) {
	res := &Reservation{Status: StatusConfirmed}
	assert.True(t, res.CanTransition())

	for _, status := range []ReservationStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		res.Status = status
		assert.False(t, res.CanTransition(), "status %s must not admit transitions", status)
	}
}

func TestReservation_EscrowAddress(t *testing.T) {
	res := &Reservation{ID: 42}
	assert.Equal(t, "escrow:42", res.EscrowAddress())
}

func TestReservation_TimeUntilAppointment(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	res := &Reservation{AppointmentTime: now.Add(30 * time.Hour)}

	assert.Equal(t, 30*time.Hour, res.TimeUntilAppointment(now))
	assert.Equal(t, -2*time.Hour, res.TimeUntilAppointment(now.Add(32*time.Hour)))
}

func TestReservation_NoShowEligibleAt(t *testing.T) {
	appointment := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	res := &Reservation{AppointmentTime: appointment}

	assert.Equal(t, appointment.Add(15*time.Minute), res.NoShowEligibleAt(15*time.Minute))
}
