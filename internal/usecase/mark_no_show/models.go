package mark_no_show

// Request модель запроса на отметку неявки клиента
type Request struct {
	ReservationID int64  // ID бронирования
	CallerWallet  string // Кошелек вызывающего (из токена авторизации)
}

// Response модель ответа с результатом отметки и разбивкой выплат
type Response struct {
	ReservationID      int64  // ID бронирования
	Status             string // Новый статус (no_show)
	SalonPaymentUnits  int64  // Компенсация салону
	AppCommissionUnits int64  // Комиссия платформы
}
