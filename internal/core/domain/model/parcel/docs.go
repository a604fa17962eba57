// Package parcel provides domain entities and business logic for freight
// package management. It implements the Parcel aggregate root with lifecycle
// management, proof-of-delivery settlement, and failed-delivery escalation.
//
// The package includes:
//   - Parcel: The aggregate root managing identity, delivery state, and escalation
//   - Status: A state machine that makes the allowed status transitions explicit
//   - ReceptionMode: How the receiver gets the parcel (door-to-door or pickup)
//
// Key business rules:
//   - A parcel is never deleted; Delivered is the only terminal status
//   - The failed-attempt counter only increases
//   - Reception mode flips to ForPickup exactly once, when attempts reach 2
//   - Every status change is paired with a status-log entry by the application layer
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
