// Package kernel provides core domain primitives for the freight fulfillment
// system. It implements fundamental building blocks following Domain-Driven
// Design principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object representing WGS84 coordinates with geodesic distance
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
