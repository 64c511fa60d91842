package commands

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"

	"go.uber.org/zap"
)

var ErrSeedPackageStatusesCommandIsNotConstructed = errors.New(
	"SeedPackageStatusesCommand must be created via NewSeedPackageStatusesCommand constructor",
)

// SeedPackageStatusesCommand makes sure every status lookup row exists. Running it again is
// harmless.
type SeedPackageStatusesCommand struct { //nolint:recvcheck //using for validation
	updatedBy *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSeedPackageStatusesCommand accepts a nil updatedBy for system initiated seeding.
func NewSeedPackageStatusesCommand(updatedBy *kernel.UUID) (SeedPackageStatusesCommand, error) {
	if updatedBy != nil {
		if err := updatedBy.Validate(); err != nil {
			return SeedPackageStatusesCommand{}, err
		}
	}
	return SeedPackageStatusesCommand{updatedBy: updatedBy, guard: guard.NewConstructorGuard()}, nil
}

func (c SeedPackageStatusesCommand) Validate() error {
	return c.guard.Validate(ErrSeedPackageStatusesCommandIsNotConstructed)
}

func (c SeedPackageStatusesCommand) UpdatedBy() *kernel.UUID {
	return c.updatedBy
}

type SeedPackageStatusesCommandHandler struct {
	uowFactory StatusUoWFactory
	logger     *zap.Logger
}

func NewSeedPackageStatusesCommandHandler(uowFactory StatusUoWFactory, logger *zap.Logger) SeedPackageStatusesCommandHandler {
	return SeedPackageStatusesCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle ensures the rows in lifecycle order and returns them.
func (h *SeedPackageStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd SeedPackageStatusesCommand,
) ([]shipment.StatusRecord, error) {
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

	records := make([]shipment.StatusRecord, 0, len(shipment.AllStatuses()))
	for _, status := range shipment.AllStatuses() {
		record, err := uow.PackageStatusRepository().Ensure(ctx, status, cmd.UpdatedBy())
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("package statuses seeded", zap.Int("count", len(records)))
	return records, nil
}
