// Package rider provides the Rider aggregate: a courier applicant whose approval
// status is decided by an administrator and whose work status tracks whether it
// is free to take a new parcel.
//
// Key business rules:
//   - Riders register as Pending and have no work status until approved
//   - Approval makes the rider Available; rejection leaves work status untouched
//   - Only an Approved, Available rider can be given a delivery
//   - A rider in delivery returns to Available once it has nothing left to deliver
package rider
