package parcel

import (
	"strings"

	"parcelhub/internal/pkg/errs"
)

// Labels recognized as transition triggers. Every other label is Custom.
const (
	LabelPaid      = "pending-pickup"
	LabelAssigned  = "driver_assigned"
	LabelDelivered = "parcel_delivered"
)

// StatusKind discriminates DeliveryStatus values.
type StatusKind int

const (
	// Created is a parcel with no delivery status yet (unassigned).
	Created StatusKind = iota
	Paid
	Assigned
	Delivered
	Custom
)

func (k StatusKind) String() string {
	switch k {
	case Created:
		return "Created"
	case Paid:
		return "Paid"
	case Assigned:
		return "Assigned"
	case Delivered:
		return "Delivered"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// DeliveryStatus is the parcel's delivery state. The recognized kinds drive
// side effects in the lifecycle; Custom carries any other caller-supplied
// label verbatim for the ledger and reporting.
type DeliveryStatus struct {
	kind  StatusKind
	label string
}

func StatusCreated() DeliveryStatus {
	return DeliveryStatus{kind: Created}
}

func StatusPaid() DeliveryStatus {
	return DeliveryStatus{kind: Paid, label: LabelPaid}
}

func StatusAssigned() DeliveryStatus {
	return DeliveryStatus{kind: Assigned, label: LabelAssigned}
}

func StatusDelivered() DeliveryStatus {
	return DeliveryStatus{kind: Delivered, label: LabelDelivered}
}

// ParseDeliveryStatus maps a caller-supplied label to its variant. The label is
// kept byte for byte: only the exact recognized tokens trigger transitions and
// anything else, padded tokens included, becomes Custom. Blank labels are
// rejected.
func ParseDeliveryStatus(label string) (DeliveryStatus, error) {
	if strings.TrimSpace(label) == "" {
		return DeliveryStatus{}, errs.NewValueIsRequiredError("deliveryStatus")
	}
	return classify(label), nil
}

// RestoreDeliveryStatus maps a stored label back to its variant; the empty
// label is a parcel that never left Created.
func RestoreDeliveryStatus(label string) DeliveryStatus {
	if label == "" {
		return StatusCreated()
	}
	return classify(label)
}

func classify(label string) DeliveryStatus {
	switch label {
	case LabelPaid:
		return StatusPaid()
	case LabelAssigned:
		return StatusAssigned()
	case LabelDelivered:
		return StatusDelivered()
	default:
		return DeliveryStatus{kind: Custom, label: label}
	}
}

func (s DeliveryStatus) Kind() StatusKind {
	return s.kind
}

// Label is the free-text token stored on the parcel; empty for Created.
func (s DeliveryStatus) Label() string {
	return s.label
}

func (s DeliveryStatus) IsDelivered() bool {
	return s.kind == Delivered
}

func (s DeliveryStatus) String() string {
	if s.kind == Created {
		return "unassigned"
	}
	return s.label
}
