// Package services provides domain services for computations that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - CommissionCalculator: the commission split per vertical with optional
//     per-provider override rates
//   - DeliveryPricer: pure distance, time, and price computation for
//     delivery orders from an injected configuration snapshot
//
// Domain services stay free of persistence and transport concerns following
// Domain-Driven Design principles.
package services
