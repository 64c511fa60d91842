package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned from it use the
// transaction opened by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback is a no-op after Commit, so it can always be deferred.
	Rollback(ctx context.Context) error

	CompanyRepository() CompanyRepository
	BranchRepository() BranchRepository
	AgentRepository() AgentRepository
	DriverRepository() DriverRepository
	VehicleRepository() VehicleRepository
	CategoryRepository() CategoryRepository
	PackageStatusRepository() PackageStatusRepository
	PackageRepository() PackageRepository
	TicketRepository() TicketRepository
}
