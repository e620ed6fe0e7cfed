// Package product provides the marketplace catalog entity and cart line
// snapshot used by checkout. Stock is decremented through a conditional
// update at the persistence layer; CheckAvailability gives the early,
// user-facing rejection before the authoritative decrement runs.
package product
