package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for rejected status transitions.
// Use errors.Is against it and errors.As with *InvalidTransitionError to
// recover the current and requested statuses.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status transition that is not present in
// the order state machine's adjacency table. It carries both sides of the
// rejected transition so callers can render a precise message.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// transition.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with a static adjacency table to ensure
// orders follow the correct business workflow; no transition may skip an
// intermediate state.
//
// State transitions:
//
//	created ──> provider_assigned ──> in_progress ──> completed
//	   │                │                  │
//	   └────────────────┴──────────────────┴──> cancelled / failed
//
// completed, cancelled and failed are terminal: they have no outgoing
// transitions, and an order that reached one of them keeps its financial
// fields frozen forever.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first created.
	Created

	// ProviderAssigned indicates a provider has been matched to the order.
	ProviderAssigned

	// InProgress indicates the provider has started fulfilling the order.
	InProgress

	// Completed indicates the order was fulfilled. Terminal.
	Completed

	// Cancelled indicates the order was cancelled by an authorized party.
	// Terminal.
	Cancelled

	// Failed indicates fulfilment failed. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Created:          "created",
		ProviderAssigned: "provider_assigned",
		InProgress:       "in_progress",
		Completed:        "completed",
		Cancelled:        "cancelled",
		Failed:           "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:          "created",
		ProviderAssigned: "provider_assigned",
		InProgress:       "in_progress",
		Completed:        "completed",
		Cancelled:        "cancelled",
		Failed:           "failed",
	}
}

// statusTransitions is the static adjacency table of the order state machine.
// Terminal states map to an empty set.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:          {ProviderAssigned, Cancelled, Failed},
		ProviderAssigned: {InProgress, Cancelled, Failed},
		InProgress:       {Completed, Cancelled, Failed},
		Completed:        {},
		Cancelled:        {},
		Failed:           {},
	}
}

// StatusFromString parses a status from its string representation.
func StatusFromString(value string) (Status, error) {
	for s, str := range getValidStatusStrings() {
		if str == value {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// CanTransitionTo reports whether the adjacency table permits a transition
// from this status to the target. It is a pure lookup with no side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the transition is legal.
//
// Returns:
//   - (target, nil) when the adjacency table permits the transition
//   - (Unknown, error) otherwise; the error is an *InvalidTransitionError
//     carrying the current and requested statuses
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidTransitionError(s, target)
	}
	return target, nil
}
