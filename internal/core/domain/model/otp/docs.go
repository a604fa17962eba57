// Package otp contains the DeliveryOtp aggregate: the one-time password a
// receiver presents to settle a door-to-door delivery.
//
// At most one OTP exists per (shipment, parcel) pair. Issuing a new code
// overwrites the previous one, so only the last issued code can ever match.
// A code is good for a single settlement: consumption flips IsValid off and
// the flip is committed in the same transaction as the delivery itself.
package otp
