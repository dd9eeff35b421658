package domain

import "time"

// Policy holds the configurable knobs of the disbursement policy. The tier
// thresholds and percentages are fixed business rules (see constants.go);
// the EUR conversion rate and the commission are configuration.
type Policy struct {
	EURRateUnits  int64         // ledger units per 1 EUR
	CommissionBps int64         // platform commission in basis points
	NoShowGrace   time.Duration // delay after the appointment before a no-show may be declared
}

// DefaultPolicy returns the production policy values
func DefaultPolicy() Policy {
	return Policy{
		EURRateUnits:  DefaultEURRateUnits,
		CommissionBps: DefaultCommissionBps,
		NoShowGrace:   DefaultNoShowGrace,
	}
}

// Split is a three-way disbursement of an escrowed amount. For every split
// produced by this package ClientRefund + SalonFee + AppCommission equals
// the input amount exactly.
type Split struct {
	ClientRefund  int64
	SalonFee      int64
	AppCommission int64
}

// Total returns the sum of all three legs
func (s Split) Total() int64 {
	return s.ClientRefund + s.SalonFee + s.AppCommission
}

// CancellationSplit computes the disbursement for a cancelled reservation.
//
// The tier is selected by the time remaining until the appointment, with
// strict greater-than comparisons in descending order:
//
//	> 48h       : 100% refund, no fee
//	24h < t ≤ 48h: 80% refund, 2 EUR fee
//	0 < t ≤ 24h : 50% refund, 5 EUR fee
//	t ≤ 0       : no refund, 10 EUR fee
//
// The flat fee is converted to ledger units and capped at amount - refund;
// the platform commission is carved out of that fee, not out of the full
// amount. The salon fee is the balancing leg: everything not refunded and not
// taken as commission goes to the salon, so truncation remainders end up with
// the salon and the three legs always sum to amount.
func CancellationSplit(amount int64, untilAppointment time.Duration, p Policy) Split {
	var refundPct, feeEUR int64
	switch {
	case untilAppointment > RefundTierFullThreshold:
		refundPct, feeEUR = RefundPctFull, SalonFeeEURFull
	case untilAppointment > RefundTierPartialThreshold:
		refundPct, feeEUR = RefundPctPartial, SalonFeeEURPartial
	case untilAppointment > 0:
		refundPct, feeEUR = RefundPctLate, SalonFeeEURLate
	default:
		refundPct, feeEUR = RefundPctPassed, SalonFeeEURPassed
	}

	clientRefund := amount * refundPct / 100

	fee := feeEUR * p.EURRateUnits
	if max := amount - clientRefund; fee > max {
		fee = max
	}

	commission := fee * p.CommissionBps / BpsDenominator

	return Split{
		ClientRefund:  clientRefund,
		SalonFee:      amount - clientRefund - commission,
		AppCommission: commission,
	}
}

// SettlementSplit computes the disbursement for a completed or no-show
// reservation: the commission is taken from the full amount and the salon
// receives the remainder. The client gets nothing. Note the commission basis
// deliberately differs from CancellationSplit, where the commission is taken
// from the fee only.
func SettlementSplit(amount int64, p Policy) Split {
	commission := amount * p.CommissionBps / BpsDenominator
	return Split{
		ClientRefund:  0,
		SalonFee:      amount - commission,
		AppCommission: commission,
	}
}
