package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrUpdateTicketStatusCommandIsNotConstructed = errors.New(
	"UpdateTicketStatusCommand must be created via NewUpdateTicketStatusCommand constructor",
)

// UpdateTicketStatusCommand sets the transport status of a ticket. The status is kept
// raw: an unknown ticket is reported before an unknown status.
type UpdateTicketStatusCommand struct { //nolint:recvcheck //using for validation
	requester identity.Principal
	ticketID  kernel.UUID
	status    string

	guard guard.ConstructorGuard
}

func NewUpdateTicketStatusCommand(
	requester identity.Principal,
	ticketID kernel.UUID,
	status string,
) (UpdateTicketStatusCommand, error) {
	if err := errors.Join(requester.Validate(), ticketID.Validate()); err != nil {
		return UpdateTicketStatusCommand{}, err
	}

	return UpdateTicketStatusCommand{
		requester: requester,
		ticketID:  ticketID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTicketStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTicketStatusCommandIsNotConstructed)
}

func (c UpdateTicketStatusCommand) Requester() identity.Principal {
	return c.requester
}

func (c UpdateTicketStatusCommand) TicketID() kernel.UUID {
	return c.ticketID
}

func (c UpdateTicketStatusCommand) Status() string {
	return c.status
}
