package services

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/domain/model/tracking"
)

// ParcelUpdateResult describes the parcel write of a transition.
type ParcelUpdateResult struct {
	ParcelID       kernel.UUID
	TrackingID     kernel.TrackingID
	DeliveryStatus parcel.DeliveryStatus
	PaymentStatus  parcel.PaymentStatus
	Modified       bool
}

func NewParcelUpdateResult(p *parcel.Parcel, modified bool) ParcelUpdateResult {
	return ParcelUpdateResult{
		ParcelID:       p.ID(),
		TrackingID:     p.TrackingID(),
		DeliveryStatus: p.DeliveryStatus(),
		PaymentStatus:  p.PaymentStatus(),
		Modified:       modified,
	}
}

// RiderUpdateResult describes the rider write of a transition.
// UserRolePromoted is only set by approval.
type RiderUpdateResult struct {
	RiderID          kernel.UUID
	Status           rider.ApprovalStatus
	WorkStatus       rider.WorkStatus
	Modified         bool
	UserRolePromoted bool
}

func NewRiderUpdateResult(r *rider.Rider, modified bool) RiderUpdateResult {
	return RiderUpdateResult{
		RiderID:    r.ID(),
		Status:     r.Status(),
		WorkStatus: r.WorkStatus(),
		Modified:   modified,
	}
}

// PaymentConfirmationResult is the outcome of reconciling a checkout session.
//
//   - Success=false: the session is not paid, nothing was written.
//   - AlreadySettled=true: the transaction was settled earlier, nothing was
//     written; TrackingID and TransactionID come from the existing record.
//   - otherwise every field describes the settlement just performed.
type PaymentConfirmationResult struct {
	Success        bool
	AlreadySettled bool
	Reason         string
	TrackingID     string
	TransactionID  string
	ParcelUpdate   *ParcelUpdateResult
	PaymentRecord  *payment.Record
	LedgerEntry    *tracking.Entry
}
