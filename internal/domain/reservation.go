package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// Valid reports whether s is a known reservation status
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether s is a terminal status. A reservation in a
// terminal status admits no further transitions.
func (s ReservationStatus) IsTerminal() bool {
	return s.Valid() && s != StatusConfirmed
}

// ParseReservationStatus converts a string into a ReservationStatus
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
	return status, nil
}

// Reservation is the escrowed booking record. The salon owner wallet and the
// service snapshot are denormalized at creation time: authorization and
// disbursement must not depend on the salon record, which can change
// independently afterwards. AmountUnits equals the balance actually moved
// into escrow and is never recomputed.
type Reservation struct {
	ID               int64
	ClientWallet     string
	SalonID          int64
	SalonOwnerWallet string

	ServiceID   int16
	ServiceName string
	AmountUnits int64

	AppointmentTime time.Time
	CreatedAt       time.Time

	Status      ReservationStatus
	CancelledAt *time.Time
	CompletedAt *time.Time
}

// EscrowAddress returns the ledger account holding this reservation's funds
func (r *Reservation) EscrowAddress() string {
	return fmt.Sprintf("escrow:%d", r.ID)
}

// CanTransition reports whether the reservation still accepts a terminal
// transition (cancel, complete, no-show).
func (r *Reservation) CanTransition() bool {
	return r.Status == StatusConfirmed
}

// TimeUntilAppointment returns the (possibly negative) time remaining until
// the appointment.
func (r *Reservation) TimeUntilAppointment(now time.Time) time.Duration {
	return r.AppointmentTime.Sub(now)
}

// NoShowEligibleAt returns the earliest moment the salon owner may declare a
// no-show.
func (r *Reservation) NoShowEligibleAt(grace time.Duration) time.Time {
	return r.AppointmentTime.Add(grace)
}
