package services

import (
	"fmt"
	"strings"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// TicketStatusPolicy decides who may change a ticket's transport status.
type TicketStatusPolicy int

const (
	// VisibleTickets lets a principal update the tickets it can list. Any other ticket is
	// reported as not found.
	VisibleTickets TicketStatusPolicy = iota
	// WithinTicketScope also limits updates to visible tickets but answers Forbidden for the
	// rest.
	WithinTicketScope
)

// ParseTicketStatusPolicy maps the configuration values "visible" and "scoped".
// An empty value selects VisibleTickets.
func ParseTicketStatusPolicy(raw string) (TicketStatusPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "visible":
		return VisibleTickets, nil
	case "scoped":
		return WithinTicketScope, nil
	default:
		return VisibleTickets, errs.NewValueIsInvalidErrorWithCause(
			"ticket status policy",
			fmt.Errorf("%q is not one of: visible, scoped", raw),
		)
	}
}

func (p TicketStatusPolicy) String() string {
	if p == WithinTicketScope {
		return "scoped"
	}
	return "visible"
}

// Authorize checks principal against ticket under the policy. Principals with an empty
// ticket scope, such as an unrecognised role, never pass.
func (p TicketStatusPolicy) Authorize(principal identity.Principal, ticket *shipment.Ticket) error {
	if !principal.IsAuthenticated() {
		return errs.NewForbiddenError("authentication required")
	}
	if NewTicketScope(principal).AllowsTicket(ticket) {
		return nil
	}
	if p == WithinTicketScope {
		return errs.NewForbiddenError(fmt.Sprintf("ticket %s is outside the requester's scope", ticket.Code()))
	}
	return errs.NewObjectNotFoundError("ticket", ticket.ID())
}
