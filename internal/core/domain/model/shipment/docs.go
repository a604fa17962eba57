// Package shipment provides domain entities and business logic for logistics
// shipments. It implements the Shipment aggregate root that groups parcels
// for one leg of their journey: a last-mile delivery run, a transfer to a
// partner forwarder, or a transfer between warehouses.
//
// The package includes:
//   - Shipment: The aggregate root managing the leg lifecycle and member parcels
//   - Kind: What kind of movement the shipment performs
//   - Status: A state machine for the shipment itself
//   - LegStatus: A state machine for each member parcel's per-leg progress
//   - ParcelLeg: The membership entry of one parcel on one shipment
//
// Key business rules:
//   - Shipment status follows Preparing -> InTransit -> Completed/Failed
//   - A parcel appears at most once on a shipment
//   - Per-leg status is distinct from the parcel's global status
//   - Transfer completion closes all member legs in one operation
//   - The "next parcel to deliver" pointer is an advisory UI hint, not a lock
package shipment
