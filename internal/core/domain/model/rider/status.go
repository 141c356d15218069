package rider

import (
	"fmt"

	"parcelhub/internal/pkg/errs"
)

// ApprovalStatus is the administrative decision on a rider application.
//
// State transitions:
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Approve and Reject may be repeated; the last decision wins.
type ApprovalStatus int

const (
	// UnknownApproval represents an uninitialized value.
	UnknownApproval ApprovalStatus = iota
	Pending
	Approved
	Rejected
)

func approvalStrings() map[ApprovalStatus]string {
	return map[ApprovalStatus]string{
		UnknownApproval: "unknown",
		Pending:         "pending",
		Approved:        "approved",
		Rejected:        "rejected",
	}
}

// String returns the persisted token: "pending", "approved" or "rejected".
func (s ApprovalStatus) String() string {
	if str, ok := approvalStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects UnknownApproval and out-of-range values.
func (s ApprovalStatus) Validate() error {
	if s == UnknownApproval || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid approval status", s))
	}
	return nil
}

// ParseApprovalStatus maps a stored token back to its value.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	for status, str := range approvalStrings() {
		if status != UnknownApproval && str == s {
			return status, nil
		}
	}
	return UnknownApproval, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid approval status", s))
}

// WorkStatus is the rider's availability for new assignments. NoWorkStatus is
// the state of a rider that was never approved.
type WorkStatus int

const (
	NoWorkStatus WorkStatus = iota
	Available
	InDelivery
)

func workStrings() map[WorkStatus]string {
	return map[WorkStatus]string{
		NoWorkStatus: "",
		Available:    "available",
		InDelivery:   "in_delivery",
	}
}

func (s WorkStatus) String() string {
	return workStrings()[s]
}

// ParseWorkStatus maps a stored token back to its value; "" is NoWorkStatus.
func ParseWorkStatus(s string) (WorkStatus, error) {
	for status, str := range workStrings() {
		if str == s {
			return status, nil
		}
	}
	return NoWorkStatus, errs.NewValueIsInvalidErrorWithCause("workStatus", fmt.Errorf("%q is not a valid work status", s))
}
