package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ClientWallet    string    // Кошелек клиента (из токена авторизации)
	SalonID         int64     // ID салона
	ServiceID       int16     // ID услуги в каталоге салона
	AppointmentTime time.Time // Время визита
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64     // ID созданного бронирования
	ClientWallet     string    // Кошелек клиента
	SalonID          int64     // ID салона
	SalonOwnerWallet string    // Кошелек владельца салона (снапшот)
	ServiceID        int16     // ID услуги
	ServiceName      string    // Название услуги (снапшот)
	AmountUnits      int64     // Сумма, заблокированная в эскроу
	AppointmentTime  time.Time // Время визита
	Status           string    // Статус бронирования
	CreatedAt        time.Time // Время создания
}
