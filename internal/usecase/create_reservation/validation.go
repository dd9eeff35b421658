package create_reservation

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientWallet == "" {
		return fmt.Errorf("%w: clientWallet is required", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.AppointmentTime.IsZero() {
		return fmt.Errorf("%w: appointmentTime is required", ErrInvalidInput)
	}

	return nil
}

// validateAppointmentTime проверяет, что визит назначен строго в будущем
func validateAppointmentTime(appointment, now time.Time) error {
	if !appointment.After(now) {
		return ErrAppointmentInPast
	}
	return nil
}
