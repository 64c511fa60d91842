package commands

import (
	"context"
	"errors"
	"math"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"go.uber.org/zap"
)

// MaxIntakeAttempts bounds how often registration is retried after a tracking number or
// ticket code collision.
const MaxIntakeAttempts = 3

// CodeGenerator issues the public codes of a shipment.
type CodeGenerator interface {
	TrackingNumber() string
	TicketCode() string
}

// CreatePackageResult is the registered package with its ticket.
type CreatePackageResult struct {
	Package *shipment.Package
	Ticket  *shipment.Ticket
}

// CreatePackageCommandHandler registers packages. Checks run in a fixed order and the
// first failure is returned:
//
//  1. the requester is an agent (Forbidden)
//  2. sender and receiver name and phone are present
//  3. the destination branch exists and belongs to the agent's company
//  4. the driver exists and works for the agent's company
//  5. the vehicle exists, belongs to the agent's company and is driven by the driver
//  6. the departure time is a timestamp strictly in the future
//  7. the declared value is a non-negative decimal
//  8. name, weight and the optional category
//
// Package, ticket and the Pending status row are written in one transaction. A code
// collision is retried with fresh codes, each attempt in its own transaction.
type CreatePackageCommandHandler struct {
	uowFactory IntakeUoWFactory
	codes      CodeGenerator
	policy     services.IntakePolicy
	clock      Clock
	logger     *zap.Logger
}

func NewCreatePackageCommandHandler(
	uowFactory IntakeUoWFactory,
	codes CodeGenerator,
	clock Clock,
	logger *zap.Logger,
) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		policy:     services.NewIntakePolicy(),
		clock:      clockOrSystem(clock),
		logger:     logger,
	}
}

func (h *CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) (CreatePackageResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreatePackageResult{}, err
	}
	if err := services.RequireAgent(cmd.Requester()); err != nil {
		return CreatePackageResult{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxIntakeAttempts; attempt++ {
		result, err := h.register(ctx, cmd)
		if err == nil {
			h.logger.Info("package registered",
				zap.String("tracking_number", result.Package.TrackingNumber()),
				zap.String("agent_id", result.Package.SenderAgentID().String()),
				zap.String("ticket_code", result.Ticket.Code()),
				zap.Int("attempt", attempt),
			)
			return result, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return CreatePackageResult{}, err
		}

		lastErr = err
		h.logger.Warn("shipment code collision, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}

	return CreatePackageResult{}, lastErr
}

func (h *CreatePackageCommandHandler) register(ctx context.Context, cmd CreatePackageCommand) (CreatePackageResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreatePackageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()
	requester := cmd.Requester()
	input := cmd.Input()

	agent, err := uow.AgentRepository().Get(ctx, *requester.AgentID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreatePackageResult{}, errs.NewForbiddenError("requester does not resolve to an agent")
		}
		return CreatePackageResult{}, err
	}

	if err = input.Sender.Validate("sender_details"); err != nil {
		return CreatePackageResult{}, err
	}
	if err = input.Receiver.Validate("receiver_details"); err != nil {
		return CreatePackageResult{}, err
	}

	destination, err := h.resolveDestination(ctx, uow, agent, input.DestinationBranchID)
	if err != nil {
		return CreatePackageResult{}, err
	}

	driver, err := h.resolveDriver(ctx, uow, agent, input.DriverID)
	if err != nil {
		return CreatePackageResult{}, err
	}

	vehicle, err := h.resolveVehicle(ctx, uow, agent, driver, input.VehicleID)
	if err != nil {
		return CreatePackageResult{}, err
	}

	departure, err := parseDeparture(input.DepartureTime, now)
	if err != nil {
		return CreatePackageResult{}, err
	}

	value, err := parseValue(input.Value)
	if err != nil {
		return CreatePackageResult{}, err
	}

	categoryID, err := h.resolveDetails(ctx, uow, input)
	if err != nil {
		return CreatePackageResult{}, err
	}

	pending, err := uow.PackageStatusRepository().Ensure(ctx, shipment.Pending, requester.UserID())
	if err != nil {
		return CreatePackageResult{}, err
	}

	pkg, err := shipment.NewPackage(kernel.NewUUID(), h.codes.TrackingNumber(), shipment.Intake{
		Name:                input.Name,
		Weight:              input.Weight,
		Value:               value,
		CategoryID:          categoryID,
		Sender:              trimContact(input.Sender),
		Receiver:            trimContact(input.Receiver),
		SenderAgentID:       agent.ID(),
		OriginBranchID:      agent.BranchID(),
		DestinationBranchID: destination.ID(),
		Pending:             pending,
	}, now)
	if err != nil {
		return CreatePackageResult{}, err
	}

	ticket, err := shipment.NewTicket(kernel.NewUUID(), h.codes.TicketCode(), pkg, shipment.Assignment{
		DriverID:      driver.ID(),
		VehicleID:     vehicle.ID(),
		BranchID:      agent.BranchID(),
		CompanyID:     agent.CompanyID(),
		DepartureTime: departure,
	}, now)
	if err != nil {
		return CreatePackageResult{}, err
	}

	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return CreatePackageResult{}, err
	}
	if err = uow.TicketRepository().Add(ctx, ticket); err != nil {
		return CreatePackageResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreatePackageResult{}, err
	}

	return CreatePackageResult{Package: pkg, Ticket: ticket}, nil
}

func (h *CreatePackageCommandHandler) resolveDestination(
	ctx context.Context,
	uow IntakeUoW,
	agent *organization.Agent,
	raw string,
) (*organization.Branch, error) {
	id, err := parseRef("destination_branch", raw, true)
	if err != nil {
		return nil, err
	}
	branch, err := uow.BranchRepository().Get(ctx, *id)
	if err != nil {
		return nil, referenceError("destination_branch", err)
	}
	if err = h.policy.CheckDestination(agent, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (h *CreatePackageCommandHandler) resolveDriver(
	ctx context.Context,
	uow IntakeUoW,
	agent *organization.Agent,
	raw string,
) (*organization.Driver, error) {
	id, err := parseRef("driver", raw, true)
	if err != nil {
		return nil, err
	}
	driver, err := uow.DriverRepository().Get(ctx, *id)
	if err != nil {
		return nil, referenceError("driver", err)
	}
	if err = h.policy.CheckDriver(agent, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

func (h *CreatePackageCommandHandler) resolveVehicle(
	ctx context.Context,
	uow IntakeUoW,
	agent *organization.Agent,
	driver *organization.Driver,
	raw string,
) (*organization.Vehicle, error) {
	id, err := parseRef("vehicle", raw, true)
	if err != nil {
		return nil, err
	}
	vehicle, err := uow.VehicleRepository().Get(ctx, *id)
	if err != nil {
		return nil, referenceError("vehicle", err)
	}
	if err = h.policy.CheckVehicle(agent, driver, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// resolveDetails checks the descriptive fields and returns the category id, if any.
func (h *CreatePackageCommandHandler) resolveDetails(
	ctx context.Context,
	uow IntakeUoW,
	input PackageInput,
) (*kernel.UUID, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if math.IsNaN(input.Weight) || math.IsInf(input.Weight, 0) || input.Weight < 0 {
		return nil, errs.NewValueIsInvalidError("weight")
	}

	categoryID, err := parseRef("category", input.CategoryID, false)
	if err != nil || categoryID == nil {
		return nil, err
	}
	if _, err = uow.CategoryRepository().Get(ctx, *categoryID); err != nil {
		return nil, referenceError("category", err)
	}
	return categoryID, nil
}

func trimContact(c shipment.Contact) shipment.Contact {
	return shipment.Contact{Name: strings.TrimSpace(c.Name), Phone: strings.TrimSpace(c.Phone)}
}
