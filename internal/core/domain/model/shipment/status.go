package shipment

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// Status is the delivery lifecycle of a package. Every value has a row in the package
// status lookup table, keyed by the name returned from String.
//
// State transitions:
//
//	Pending ──> Sent ──> Received ──> Delivered
//	   │         │          │
//	   └─────────┴──────────┴──> Canceled
//
// Transitions only move forward. A non-terminal status may skip ahead (delivery
// confirmation can happen while a package is still Pending). Delivered and Canceled are
// terminal.
type Status int

const (
	// UnknownStatus is the zero value and never valid.
	UnknownStatus Status = iota
	Pending
	Sent
	Received
	Delivered
	Canceled
)

var statusNames = map[Status]string{
	Pending:   "Pending",
	Sent:      "Sent",
	Received:  "Received",
	Delivered: "Delivered",
	Canceled:  "Canceled",
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Sent, Received, Delivered, Canceled}
}

// ParseStatus resolves a lookup row name. Matching ignores case so that rows written as
// "pending" by older data still resolve.
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if strings.EqualFold(statusName, strings.TrimSpace(name)) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known package status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil || s.IsTerminal() {
		return false
	}
	if next == Canceled {
		return true
	}
	return next > s
}

// TransitionTo returns next if the lifecycle allows it. A refused transition is a
// ConflictError: the request was well formed but the package is in the wrong state.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return UnknownStatus, err
	}
	if !s.CanTransitionTo(next) {
		return UnknownStatus, errs.NewConflictErrorWithCause(
			"status",
			fmt.Errorf("cannot move a package from %s to %s", s, next),
		)
	}
	return next, nil
}
