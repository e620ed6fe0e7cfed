// Package order provides the Order aggregate spanning the platform's four
// business verticals: delivery, marketplace, sourcing, and coaching.
//
// The package includes:
//   - Order: the aggregate root owning identity, financials, and lifecycle
//   - Status: a state machine enforcing valid fulfilment transitions
//   - Details: a closed sum over the four vertical payload shapes
//   - ProviderRef: the polymorphic reference to the fulfilling provider
//   - StatusChange: an entry in the append-only status history
//
// Key business rules:
//   - Order number, type, and customer never change after creation
//   - Status moves created -> provider_assigned -> in_progress -> completed,
//     with cancelled and failed reachable from any non-terminal status
//   - Terminal statuses have no outgoing transitions
//   - Commission amount plus provider payout always equals the gross amount
//   - Commission fields are immutable once the order is terminal
//   - Orders are soft-deleted only; history is never rewritten
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
