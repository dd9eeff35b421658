package cancel_reservation

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	ReservationID int64  // ID бронирования
	CallerWallet  string // Кошелек вызывающего (из токена авторизации)
}

// Response модель ответа с результатом отмены и разбивкой выплат
type Response struct {
	ReservationID      int64     // ID бронирования
	Status             string    // Новый статус (cancelled)
	CancelledAt        time.Time // Время отмены
	RefundUnits        int64     // Возврат клиенту
	SalonFeeUnits      int64     // Компенсация салону
	AppCommissionUnits int64     // Комиссия платформы
}
