package complete_reservation

import "time"

// Request модель запроса на завершение визита
type Request struct {
	ReservationID int64  // ID бронирования
	CallerWallet  string // Кошелек вызывающего (из токена авторизации)
}

// Response модель ответа с результатом завершения и разбивкой выплат
type Response struct {
	ReservationID      int64     // ID бронирования
	Status             string    // Новый статус (completed)
	CompletedAt        time.Time // Время завершения
	SalonPaymentUnits  int64     // Выплата салону
	AppCommissionUnits int64     // Комиссия платформы
}
