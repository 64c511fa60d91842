package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
)

// PackageStatusRepository manages the status lookup rows.
type PackageStatusRepository interface {
	// Ensure returns the row for status, inserting it first when it does not exist.
	// Concurrent callers racing on the same name both succeed and get the same row.
	Ensure(ctx context.Context, status shipment.Status, updatedBy *kernel.UUID) (shipment.StatusRecord, error)
}

// PackageRepository stores package aggregates.
type PackageRepository interface {
	// Add inserts a new package. A duplicate tracking number is reported as
	// errs.ConflictError.
	Add(ctx context.Context, aggregate *shipment.Package) error

	// Update persists the mutable part of an existing package.
	Update(ctx context.Context, aggregate *shipment.Package) error

	// Get returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Package, error)

	// GetForUpdate is Get that also holds a row lock until the transaction ends, so
	// concurrent status changes of the same package run one after the other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Package, error)
}

// TicketRepository stores tickets.
type TicketRepository interface {
	// Add inserts a new ticket. A duplicate ticket code, or a second ticket for the same
	// package, is reported as errs.ConflictError.
	Add(ctx context.Context, ticket *shipment.Ticket) error

	Update(ctx context.Context, ticket *shipment.Ticket) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Ticket, error)

	// GetByPackage returns the ticket bound to a package, or errs.ObjectNotFoundError.
	GetByPackage(ctx context.Context, packageID kernel.UUID) (*shipment.Ticket, error)
}
