// Package kernel provides core domain primitives and utilities for the marketplace system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - Money: A value object for monetary amounts with banker's rounding arithmetic
//   - GeoPoint: A value object representing geographic coordinates with distance calculation
//   - OrderNumber: A value object for human-readable, immutable order identifiers
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
//
// The package follows Domain-Driven Design best practices, providing rich domain
// behavior and encapsulation of implementation details.
package kernel
