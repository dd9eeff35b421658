package domain

import "time"

// Platform is the singleton platform record. TotalReservations and
// TotalVolume are running counters incremented by every successful booking;
// they must be updated with atomic increments, never read-modify-write.
type Platform struct {
	AdminWallet       string
	TreasuryWallet    string
	TotalReservations int64
	TotalVolume       int64
	CreatedAt         time.Time
}
