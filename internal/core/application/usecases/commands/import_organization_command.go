package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"

	"go.uber.org/zap"
)

var ErrImportOrganizationCommandIsNotConstructed = errors.New(
	"ImportOrganizationCommand must be created via NewImportOrganizationCommand constructor",
)

// Organization is a batch of reference data. Existing rows with the same id are replaced.
type Organization struct {
	Companies  []*organization.Company
	Branches   []*organization.Branch
	Agents     []*organization.Agent
	Drivers    []*organization.Driver
	Vehicles   []*organization.Vehicle
	Categories []*organization.Category
}

func (o Organization) size() int {
	return len(o.Companies) + len(o.Branches) + len(o.Agents) +
		len(o.Drivers) + len(o.Vehicles) + len(o.Categories)
}

// ImportOrganizationCommand loads companies, branches, staff, fleet and categories.
type ImportOrganizationCommand struct { //nolint:recvcheck //using for validation
	org Organization

	guard guard.ConstructorGuard
}

func NewImportOrganizationCommand(org Organization) (ImportOrganizationCommand, error) {
	if org.size() == 0 {
		return ImportOrganizationCommand{}, errs.NewValueIsRequiredError("organization")
	}
	return ImportOrganizationCommand{org: org, guard: guard.NewConstructorGuard()}, nil
}

func (c ImportOrganizationCommand) Validate() error {
	return c.guard.Validate(ErrImportOrganizationCommandIsNotConstructed)
}

func (c ImportOrganizationCommand) Organization() Organization {
	return c.org
}

type ImportOrganizationCommandHandler struct {
	uowFactory OrganizationUoWFactory
	logger     *zap.Logger
}

func NewImportOrganizationCommandHandler(uowFactory OrganizationUoWFactory, logger *zap.Logger) ImportOrganizationCommandHandler {
	return ImportOrganizationCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle saves the batch in one transaction, parents before children.
func (h *ImportOrganizationCommandHandler) Handle(ctx context.Context, cmd ImportOrganizationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	org := cmd.Organization()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, c := range org.Companies {
		if err := uow.CompanyRepository().Save(ctx, c); err != nil {
			return err
		}
	}
	for _, b := range org.Branches {
		if err := uow.BranchRepository().Save(ctx, b); err != nil {
			return err
		}
	}
	for _, a := range org.Agents {
		if err := uow.AgentRepository().Save(ctx, a); err != nil {
			return err
		}
	}
	for _, d := range org.Drivers {
		if err := uow.DriverRepository().Save(ctx, d); err != nil {
			return err
		}
	}
	for _, v := range org.Vehicles {
		if err := uow.VehicleRepository().Save(ctx, v); err != nil {
			return err
		}
	}
	for _, c := range org.Categories {
		if err := uow.CategoryRepository().Save(ctx, c); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("organization imported",
		zap.Int("companies", len(org.Companies)),
		zap.Int("branches", len(org.Branches)),
		zap.Int("agents", len(org.Agents)),
		zap.Int("drivers", len(org.Drivers)),
		zap.Int("vehicles", len(org.Vehicles)),
		zap.Int("categories", len(org.Categories)),
	)
	return nil
}
