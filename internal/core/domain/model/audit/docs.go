// Package audit provides the append-only audit event model. Events record
// who did what to which order and when; they are written once, never
// updated, and kept even after the orders they reference are soft-deleted.
package audit
