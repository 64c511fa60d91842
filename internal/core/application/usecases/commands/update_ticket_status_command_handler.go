package commands

import (
	"context"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"go.uber.org/zap"
)

// UpdateTicketStatusCommandHandler changes a ticket's transport status. The package status
// is left alone. Who may do this is decided by the configured TicketStatusPolicy.
type UpdateTicketStatusCommandHandler struct {
	uowFactory TicketUoWFactory
	policy     services.TicketStatusPolicy
	clock      Clock
	logger     *zap.Logger
}

func NewUpdateTicketStatusCommandHandler(
	uowFactory TicketUoWFactory,
	policy services.TicketStatusPolicy,
	clock Clock,
	logger *zap.Logger,
) UpdateTicketStatusCommandHandler {
	return UpdateTicketStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clockOrSystem(clock),
		logger:     logger,
	}
}

func (h *UpdateTicketStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateTicketStatusCommand,
) (*shipment.Ticket, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ticket, err := uow.TicketRepository().Get(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(cmd.Requester(), ticket); err != nil {
		return nil, err
	}

	status, err := shipment.ParseTicketStatus(cmd.Status())
	if err != nil {
		return nil, err
	}

	previous := ticket.Status()
	if err = ticket.ChangeStatus(status, h.clock()); err != nil {
		return nil, err
	}
	if err = uow.TicketRepository().Update(ctx, ticket); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("ticket status updated",
		zap.String("ticket_code", ticket.Code()),
		zap.Stringer("from", previous),
		zap.Stringer("to", status),
	)
	return ticket, nil
}
