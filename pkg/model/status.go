// pkg/model/status.go
package model

import "time"

// PaymentStatus tracks where a billing period sits in the invoicing
// flow.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentInvoiceSent PaymentStatus = "invoiceSent"
	PaymentPaid        PaymentStatus = "paid"
	PaymentCompleted   PaymentStatus = "completed"
)

// PeriodStatus describes a billing period's temporal position relative
// to the current month. Distinct from PaymentStatus.
type PeriodStatus string

const (
	PeriodUpcoming PeriodStatus = "upcoming"
	PeriodCurrent  PeriodStatus = "current"
	PeriodPast     PeriodStatus = "past"
	// PeriodArchived marks past periods whose payment flow finished.
	PeriodArchived PeriodStatus = "archived_complete"
)

// DerivePeriodStatus places (month, year) relative to now. Past periods
// whose payment flow completed are archived.
func DerivePeriodStatus(month, year int, payment PaymentStatus, now time.Time) PeriodStatus {
	cur := int(now.Year())*12 + int(now.Month()) - 1
	p := year*12 + month - 1

	switch {
	case p > cur:
		return PeriodUpcoming
	case p == cur:
		return PeriodCurrent
	case payment == PaymentCompleted || payment == PaymentPaid:
		return PeriodArchived
	default:
		return PeriodPast
	}
}

// A2PStatus is the fixed ordered compliance pipeline for phone-number
// registrations.
type A2PStatus string

const (
	A2PToSubmit            A2PStatus = "to_submit"
	A2PSubmitted           A2PStatus = "submitted"
	A2PRejected            A2PStatus = "rejected"
	A2PRejectedResubmitted A2PStatus = "rejected_resubmitted"
	A2PBrandApproved       A2PStatus = "brand_approved"
	A2PFullyApproved       A2PStatus = "fully_approved"
)

// DropStatus is the coarse inbox-item state.
type DropStatus string

const (
	DropNew      DropStatus = "new"
	DropArchived DropStatus = "archived"
)
