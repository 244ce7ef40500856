package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// ResolveStatus derives a member's payment status from raw financial facts.
// Precedence is strict: fully paid wins over everything, then a lapsed due
// date, then pending. A zero or negative dues amount with no payment resolves
// to Paid; that is the intended reading of "nothing owed", not an error.
//
// The function is pure. It never reads the stored status and callers must
// never let an inbound status value stick without passing through here.
func ResolveStatus(amountPaidCents, duesAmountCents int64, dueDate *time.Time, now time.Time) PaymentStatus {
	// Malformed facts are treated as zero rather than rejected; status
	// resolution must never be the thing that takes the system down.
	if amountPaidCents < 0 {
		amountPaidCents = 0
	}

	if amountPaidCents >= duesAmountCents {
		return PaymentStatusPaid
	}
	if dueDate != nil && now.After(*dueDate) {
		return PaymentStatusOverdue
	}
	return PaymentStatusPending
}

// ResolveStatusOr resolves status from facts, falling back to the previously
// stored status when the facts are unusable. Used on read paths where a bad
// row must not surface as an error.
func ResolveStatusOr(prev PaymentStatus, amountPaidCents, duesAmountCents int64, dueDate *time.Time, now time.Time) PaymentStatus {
	if now.IsZero() {
		return prev
	}
	if dueDate != nil && dueDate.IsZero() {
		return prev
	}
	return ResolveStatus(amountPaidCents, duesAmountCents, dueDate, now)
}

// ValidStatus reports whether s is one of the three known payment statuses.
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}
