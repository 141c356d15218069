package http

import (
	"time"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/payment"
	"parcelhub/internal/core/domain/model/tracking"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type NewParcel struct {
	ParcelName      string `json:"parcelName"`
	SenderName      string `json:"senderName"`
	SenderEmail     string `json:"senderEmail"`
	ReceiverName    string `json:"receiverName"`
	ReceiverAddress string `json:"receiverAddress"`
	Cost            int64  `json:"cost"`
	Currency        string `json:"currency"`
}

type RiderAssignment struct {
	RiderID    openapi_types.UUID `json:"riderId"`
	RiderEmail string             `json:"riderEmail"`
	RiderName  string             `json:"riderName"`
}

type DeliveryStatusChange struct {
	DeliveryStatus string              `json:"deliveryStatus"`
	RiderID        *openapi_types.UUID `json:"riderId"`
}

type CheckoutRequest struct {
	ParcelID openapi_types.UUID `json:"parcelId"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type NewRider struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	District string `json:"district"`
}

type RiderDecision struct {
	Status string `json:"status"`
}

type WorkStatusChange struct {
	WorkStatus string `json:"workStatus"`
}

type NewUser struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Parcel struct {
	ID              string    `json:"id"`
	TrackingID      string    `json:"trackingId"`
	ParcelName      string    `json:"parcelName"`
	SenderName      string    `json:"senderName"`
	SenderEmail     string    `json:"senderEmail"`
	ReceiverName    string    `json:"receiverName,omitempty"`
	ReceiverAddress string    `json:"receiverAddress,omitempty"`
	Cost            float64   `json:"cost"`
	Currency        string    `json:"currency"`
	RiderID         string    `json:"riderId,omitempty"`
	RiderEmail      string    `json:"riderEmail,omitempty"`
	RiderName       string    `json:"riderName,omitempty"`
	DeliveryStatus  string    `json:"deliveryStatus"`
	PaymentStatus   string    `json:"paymentStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toParcel(p queries.ParcelResponse) Parcel {
	return Parcel(p)
}

type TrackingEntry struct {
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toTrackingEntry(e tracking.Entry) *TrackingEntry {
	return &TrackingEntry{
		TrackingID: e.TrackingID().String(),
		Status:     e.Status(),
		Details:    e.Details(),
		CreatedAt:  e.CreatedAt(),
	}
}

type CreatedParcel struct {
	TrackingID  string         `json:"trackingId"`
	Parcel      Parcel         `json:"parcel"`
	TrackingLog *TrackingEntry `json:"trackingLog"`
}

type ParcelUpdate struct {
	ParcelID       string `json:"parcelId"`
	TrackingID     string `json:"trackingId"`
	DeliveryStatus string `json:"deliveryStatus"`
	PaymentStatus  string `json:"paymentStatus"`
	Modified       bool   `json:"modified"`
}

func toParcelUpdate(r services.ParcelUpdateResult) *ParcelUpdate {
	return &ParcelUpdate{
		ParcelID:       r.ParcelID.String(),
		TrackingID:     r.TrackingID.String(),
		DeliveryStatus: r.DeliveryStatus.String(),
		PaymentStatus:  r.PaymentStatus.String(),
		Modified:       r.Modified,
	}
}

type RiderUpdate struct {
	RiderID          string `json:"riderId"`
	Status           string `json:"status"`
	WorkStatus       string `json:"workStatus"`
	Modified         bool   `json:"modified"`
	UserRolePromoted bool   `json:"userRolePromoted"`
}

func toRiderUpdate(r *services.RiderUpdateResult) *RiderUpdate {
	if r == nil {
		return nil
	}
	return &RiderUpdate{
		RiderID:          r.RiderID.String(),
		Status:           r.Status.String(),
		WorkStatus:       r.WorkStatus.String(),
		Modified:         r.Modified,
		UserRolePromoted: r.UserRolePromoted,
	}
}

type AssignmentResult struct {
	ParcelUpdate        *ParcelUpdate  `json:"parcelUpdate"`
	RiderUpdate         *RiderUpdate   `json:"riderUpdate"`
	PreviousRiderUpdate *RiderUpdate   `json:"previousRiderUpdate,omitempty"`
	TrackingLog         *TrackingEntry `json:"trackingLog"`
}

func toAssignmentResult(r commands.AssignRiderResult) AssignmentResult {
	return AssignmentResult{
		ParcelUpdate:        toParcelUpdate(r.Parcel),
		RiderUpdate:         toRiderUpdate(&r.Rider),
		PreviousRiderUpdate: toRiderUpdate(r.PreviousRider),
		TrackingLog:         toTrackingEntry(r.LedgerEntry),
	}
}

type StatusResult struct {
	ParcelUpdate *ParcelUpdate  `json:"parcelUpdate"`
	RiderUpdate  *RiderUpdate   `json:"riderUpdate,omitempty"`
	TrackingLog  *TrackingEntry `json:"trackingLog"`
}

type PaymentRecord struct {
	TransactionID string    `json:"transactionId"`
	TrackingID    string    `json:"trackingId"`
	ParcelID      string    `json:"parcelId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

func toPaymentRecord(r *payment.Record) *PaymentRecord {
	if r == nil {
		return nil
	}
	return &PaymentRecord{
		TransactionID: r.TransactionID(),
		TrackingID:    r.TrackingID().String(),
		ParcelID:      r.ParcelID().String(),
		Amount:        r.Amount().Major(),
		Currency:      r.Amount().Currency(),
		CustomerEmail: r.PayerEmail(),
		PaidAt:        r.SettledAt(),
	}
}

type PaymentConfirmation struct {
	Success        bool           `json:"success"`
	AlreadySettled bool           `json:"alreadySettled,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	TrackingID     string         `json:"trackingId,omitempty"`
	TransactionID  string         `json:"transactionId,omitempty"`
	ParcelUpdate   *ParcelUpdate  `json:"parcelUpdate,omitempty"`
	PaymentRecord  *PaymentRecord `json:"paymentRecord,omitempty"`
}

func toPaymentConfirmation(r services.PaymentConfirmationResult) PaymentConfirmation {
	resp := PaymentConfirmation{
		Success:        r.Success,
		AlreadySettled: r.AlreadySettled,
		Reason:         r.Reason,
		TrackingID:     r.TrackingID,
		TransactionID:  r.TransactionID,
		PaymentRecord:  toPaymentRecord(r.PaymentRecord),
	}
	if r.ParcelUpdate != nil {
		resp.ParcelUpdate = toParcelUpdate(*r.ParcelUpdate)
	}
	return resp
}

type DailyDeliveries struct {
	Date           string `json:"date"`
	DeliveredCount int64  `json:"deliveredCount"`
}

type Rider struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	District   string    `json:"district,omitempty"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toRider(r queries.RiderResponse) Rider {
	return Rider(r)
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
