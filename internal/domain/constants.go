package domain

import "time"

// Refund tiers are keyed by the time remaining until the appointment,
// compared with strict "greater than" at every boundary.
const (
	RefundTierFullThreshold    = 48 * time.Hour // > 48h: full refund
	RefundTierPartialThreshold = 24 * time.Hour // > 24h: 80% refund
)

// Refund percentages per tier.
const (
	RefundPctFull    int64 = 100
	RefundPctPartial int64 = 80
	RefundPctLate    int64 = 50
	RefundPctPassed  int64 = 0
)

// Flat salon fees per tier, in EUR. Converted to ledger units via the
// configured rate before being applied.
const (
	SalonFeeEURFull    int64 = 0
	SalonFeeEURPartial int64 = 2
	SalonFeeEURLate    int64 = 5
	SalonFeeEURPassed  int64 = 10
)

// Default policy values. The effective values come from configuration; these
// defaults match the production policy.
const (
	DefaultEURRateUnits  int64 = 50_000_000 // ledger units per 1 EUR
	DefaultCommissionBps int64 = 300        // 3%
	DefaultNoShowGrace         = 15 * time.Minute
)

// Business validation constants
const (
	MaxSalonNameLength   = 64
	MaxServiceNameLength = 32
	MaxServicesPerSalon  = 10
	MinServicesPerSalon  = 1
)

// BpsDenominator is the basis-point denominator used in commission math.
const BpsDenominator int64 = 10_000

// TimeFormat is the wire format for appointment timestamps.
const TimeFormat = time.RFC3339
