package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a recorded payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid returns true for the four known statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// BookingStatus the booking status a payment in this status implies
func (s PaymentStatus) BookingStatus() BookingStatus {
	switch s {
	case PaymentStatusPaid:
		return StatusConfirmed
	case PaymentStatusFailed, PaymentStatusRefunded:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// ResolveBookingStatus returns the status a booking currently in `current` must move to
// when its payment is written with status s.
// Returns ErrIllegalTransition when the implied change is not allowed by the booking state machine.
func (s PaymentStatus) ResolveBookingStatus(current BookingStatus) (BookingStatus, error) {
	target := s.BookingStatus()
	if target == current {
		return current, nil
	}
	if !current.CanTransitionTo(target) {
		return current, ErrIllegalTransition
	}
	return target, nil
}

// PaymentStatusForCancel the payment status that keeps the ledger consistent with
// a cancelled booking: a captured payment is refunded, anything else failed
func PaymentStatusForCancel(current PaymentStatus) PaymentStatus {
	switch current {
	case PaymentStatusPaid, PaymentStatusRefunded:
		return PaymentStatusRefunded
	default:
		return PaymentStatusFailed
	}
}

// PaymentMethod tag of the way the guest pays.
// Known methods are listed below; integrations may add their own with the "x-" prefix.
type PaymentMethod string

const (
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPIID      PaymentMethod = "upiID"
	PaymentMethodUPIQR      PaymentMethod = "upiQR"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

// CustomPaymentMethodPrefix prefix of extension payment methods
const CustomPaymentMethodPrefix = "x-"

// maxPaymentMethodLength matches the payments.payment_method column
const maxPaymentMethodLength = 32

// IsValid returns true for known methods and well-formed extension tags
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPIID, PaymentMethodUPIQR, PaymentMethodNetBanking:
		return true
	}
	s := string(m)
	return strings.HasPrefix(s, CustomPaymentMethodPrefix) &&
		len(s) > len(CustomPaymentMethodPrefix) &&
		len(s) <= maxPaymentMethodLength
}

// IsCustom returns true for extension methods
func (m PaymentMethod) IsCustom() bool {
	return strings.HasPrefix(string(m), CustomPaymentMethodPrefix)
}

// Payment local ledger entry of a booking's payment (one per booking)
type Payment struct {
	ID                int64
	BookingID         int64
	Amount            decimal.Decimal
	Status            PaymentStatus
	Method            PaymentMethod
	ProviderPaymentID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PaymentRecord input of a ledger write; nil fields keep the stored value
// (or the default when the payment does not exist yet)
type PaymentRecord struct {
	BookingID         int64
	Status            PaymentStatus
	Method            *PaymentMethod
	ProviderPaymentID *string
	Amount            *decimal.Decimal
}
