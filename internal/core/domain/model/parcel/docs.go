// Package parcel provides the Parcel aggregate, the root of the shipment
// lifecycle.
//
// The package includes:
//   - Parcel: identity, tracking identifier, sender details, cost, rider
//     assignment, delivery status and payment status
//   - DeliveryStatus: a tagged variant with the transition-triggering values
//     (Created, Paid, Assigned, Delivered) and an open Custom label
//   - PaymentStatus: unpaid or paid
//
// Key business rules:
//   - A parcel gets its tracking identifier once, at creation, and never changes it
//   - Payment can be settled only once
//   - A delivered parcel cannot be reassigned
//   - Any other status label is accepted as an opaque pass-through value
package parcel
