// Package statuslog contains the append-only status ledger. Every committed
// status transition of a parcel or shipment writes exactly one Entry in the
// same transaction as the transition itself. The denormalized status columns
// on the aggregates are derived caches; the latest ledger entry is the truth.
package statuslog
