// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the freight system. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - RouteSelector: a domain service picking the nearest next stop on a
//     delivery shipment
package services
