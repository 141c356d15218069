package ports

import "context"

// PaymentSession is what the gateway reports for a checkout session.
type PaymentSession struct {
	ID string
	// TransactionID is the gateway's payment reference. It may be empty while
	// the session is unpaid.
	TransactionID string
	Paid          bool
	PaymentStatus string
	AmountMinor   int64
	Currency      string
	PayerEmail    string
	Metadata      map[string]string
}

// Metadata keys written when the checkout session is created.
const (
	MetadataParcelID   = "parcelId"
	MetadataParcelName = "parcelName"
	MetadataTrackingID = "trackingId"
)

// CheckoutRequest describes a hosted checkout page for one parcel.
type CheckoutRequest struct {
	ParcelID    string
	ParcelName  string
	TrackingID  string
	AmountMinor int64
	Currency    string
	PayerEmail  string
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the created session and the URL the payer is sent to.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the external payment provider. Implementations bound every
// call with a timeout and report failures as errs.ExternalServiceError.
type PaymentGateway interface {
	RetrieveSession(ctx context.Context, sessionID string) (PaymentSession, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}
