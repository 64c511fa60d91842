// Package commands contains the operations that change shipments. Every handler opens its
// own unit of work, so a command either commits completely or leaves nothing behind.
package commands

import (
	"context"
	"time"

	"parcelhub/internal/core/ports"
)

// Unit of work subsets. Each handler asks only for the repositories it touches; the
// postgres unit of work satisfies all of them.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// IntakeUoW covers package registration: reference lookups plus the writes of the
	// package, its ticket and the status row.
	IntakeUoW interface {
		TxManager
		AgentRepository() ports.AgentRepository
		BranchRepository() ports.BranchRepository
		DriverRepository() ports.DriverRepository
		VehicleRepository() ports.VehicleRepository
		CategoryRepository() ports.CategoryRepository
		PackageStatusRepository() ports.PackageStatusRepository
		PackageRepository() ports.PackageRepository
		TicketRepository() ports.TicketRepository
	}

	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// DeliveryUoW covers delivery confirmation.
	DeliveryUoW interface {
		TxManager
		AgentRepository() ports.AgentRepository
		PackageStatusRepository() ports.PackageStatusRepository
		PackageRepository() ports.PackageRepository
		TicketRepository() ports.TicketRepository
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	TicketUoW interface {
		TxManager
		TicketRepository() ports.TicketRepository
	}

	TicketUoWFactory interface {
		Create() TicketUoW
	}

	StatusUoW interface {
		TxManager
		PackageStatusRepository() ports.PackageStatusRepository
	}

	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// OrganizationUoW covers reference data imports.
	OrganizationUoW interface {
		TxManager
		CompanyRepository() ports.CompanyRepository
		BranchRepository() ports.BranchRepository
		AgentRepository() ports.AgentRepository
		DriverRepository() ports.DriverRepository
		VehicleRepository() ports.VehicleRepository
		CategoryRepository() ports.CategoryRepository
	}

	OrganizationUoWFactory interface {
		Create() OrganizationUoW
	}
)

// Clock returns the current time. Handlers take one so tests can pin "now".
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

func clockOrSystem(clock Clock) Clock {
	if clock == nil {
		return SystemClock
	}
	return clock
}
