package complete_reservation

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.CallerWallet == "" {
		return fmt.Errorf("%w: callerWallet is required", ErrInvalidInput)
	}

	return nil
}
