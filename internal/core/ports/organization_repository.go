// Package ports defines the persistence contracts the application layer depends on.
// Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
)

// CompanyRepository stores tenants. Save inserts or replaces by id.
type CompanyRepository interface {
	Save(ctx context.Context, company *organization.Company) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Company, error)
}

// BranchRepository stores branches.
type BranchRepository interface {
	Save(ctx context.Context, branch *organization.Branch) error

	// Get returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*organization.Branch, error)
}

// AgentRepository stores agents. Loaded agents carry the company of their branch.
type AgentRepository interface {
	Save(ctx context.Context, agent *organization.Agent) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Agent, error)
}

// DriverRepository stores drivers. Loaded drivers carry the company of their branch.
type DriverRepository interface {
	Save(ctx context.Context, driver *organization.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Driver, error)
}

type VehicleRepository interface {
	Save(ctx context.Context, vehicle *organization.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Vehicle, error)
}

type CategoryRepository interface {
	Save(ctx context.Context, category *organization.Category) error
	Get(ctx context.Context, id kernel.UUID) (*organization.Category, error)
}
