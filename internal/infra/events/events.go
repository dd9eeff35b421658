// Package events публикует структурированные уведомления об операциях
// эскроу в RabbitMQ. События потребляются внешними наблюдателями
// (нотификации, аналитика) и не влияют на корректность операций.
package events

// Routing keys событий
const (
	KeyPlatformInitialized  = "platform.initialized"
	KeySalonRegistered      = "salon.registered"
	KeyReservationCreated   = "reservation.created"
	KeyReservationCancelled = "reservation.cancelled"
	KeyReservationCompleted = "reservation.completed"
	KeyReservationNoShow    = "reservation.no_show"
)

// PlatformInitialized публикуется при инициализации платформы
type PlatformInitialized struct {
	AdminWallet    string `json:"admin_wallet"`
	TreasuryWallet string `json:"treasury_wallet"`
}

// SalonRegistered публикуется при регистрации салона
type SalonRegistered struct {
	SalonID     int64  `json:"salon_id"`
	OwnerWallet string `json:"owner_wallet"`
	Name        string `json:"name"`
	Services    int    `json:"services"`
}

// ReservationCreated публикуется при создании бронирования с пополнением эскроу
type ReservationCreated struct {
	ReservationID   int64  `json:"reservation_id"`
	ClientWallet    string `json:"client_wallet"`
	SalonID         int64  `json:"salon_id"`
	ServiceID       int16  `json:"service_id"`
	ServiceName     string `json:"service_name"`
	AmountUnits     int64  `json:"amount_units"`
	AppointmentTime string `json:"appointment_time"`
}

// ReservationCancelled публикуется при отмене бронирования с расчетом возврата
type ReservationCancelled struct {
	ReservationID        int64  `json:"reservation_id"`
	ClientWallet         string `json:"client_wallet"`
	SalonOwnerWallet     string `json:"salon_owner_wallet"`
	AmountUnits          int64  `json:"amount_units"`
	RefundUnits          int64  `json:"refund_units"`
	SalonFeeUnits        int64  `json:"salon_fee_units"`
	AppCommissionUnits   int64  `json:"app_commission_units"`
	TimeUntilAppointment int64  `json:"time_until_appointment_seconds"`
}

// ReservationCompleted публикуется при завершении визита владельцем салона
type ReservationCompleted struct {
	ReservationID      int64  `json:"reservation_id"`
	SalonOwnerWallet   string `json:"salon_owner_wallet"`
	SalonPaymentUnits  int64  `json:"salon_payment_units"`
	AppCommissionUnits int64  `json:"app_commission_units"`
}

// ReservationNoShow публикуется при отметке неявки клиента
type ReservationNoShow struct {
	ReservationID      int64  `json:"reservation_id"`
	ClientWallet       string `json:"client_wallet"`
	SalonOwnerWallet   string `json:"salon_owner_wallet"`
	SalonPaymentUnits  int64  `json:"salon_payment_units"`
	AppCommissionUnits int64  `json:"app_commission_units"`
}
