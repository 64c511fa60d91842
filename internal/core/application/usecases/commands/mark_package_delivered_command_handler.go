package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"go.uber.org/zap"
)

// MarkPackageDeliveredCommandHandler records the receipt of a package by an agent at its
// destination branch. The package moves to Delivered and its ticket to delivered in the
// same transaction. A package without a ticket is still delivered; the anomaly is logged.
type MarkPackageDeliveredCommandHandler struct {
	uowFactory DeliveryUoWFactory
	clock      Clock
	logger     *zap.Logger
}

func NewMarkPackageDeliveredCommandHandler(
	uowFactory DeliveryUoWFactory,
	clock Clock,
	logger *zap.Logger,
) MarkPackageDeliveredCommandHandler {
	return MarkPackageDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clockOrSystem(clock),
		logger:     logger,
	}
}

func (h *MarkPackageDeliveredCommandHandler) Handle(
	ctx context.Context,
	cmd MarkPackageDeliveredCommand,
) (*shipment.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	requester := cmd.Requester()
	if err := services.RequireAgent(requester); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agent, err := uow.AgentRepository().Get(ctx, *requester.AgentID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewForbiddenError("requester does not resolve to an agent")
		}
		return nil, err
	}

	pkg, err := uow.PackageRepository().GetForUpdate(ctx, cmd.PackageID())
	if err != nil {
		return nil, err
	}

	if err = services.AuthorizeDelivery(agent, pkg); err != nil {
		return nil, err
	}

	delivered, err := uow.PackageStatusRepository().Ensure(ctx, shipment.Delivered, requester.UserID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	if err = pkg.MarkDelivered(agent.ID(), delivered, now); err != nil {
		return nil, err
	}
	if err = uow.PackageRepository().Update(ctx, pkg); err != nil {
		return nil, err
	}

	ticket, err := uow.TicketRepository().GetByPackage(ctx, pkg.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		h.logger.Warn("delivered package has no ticket",
			zap.String("package_id", pkg.ID().String()),
			zap.String("tracking_number", pkg.TrackingNumber()),
		)
	case err != nil:
		return nil, err
	default:
		ticket.MarkDelivered(now)
		if err = uow.TicketRepository().Update(ctx, ticket); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("package delivered",
		zap.String("tracking_number", pkg.TrackingNumber()),
		zap.String("receiver_agent_id", agent.ID().String()),
	)
	return pkg, nil
}
