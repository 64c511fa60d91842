// Package queries holds the read side. Handlers query GORM directly and scope every result
// to what the requesting principal may see.
package queries

import (
	"parcelhub/internal/adapters/out/postgres/packagerepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// packageColumns selects a package with its status name and the companies of both
// branches, so scoping can be checked without another round trip.
const packageColumns = `
	p.id, p.tracking_number, p.name, p.weight, p.value, p.shipping_fee, p.category_id,
	p.status_id, s.name AS status_name,
	p.sender_agent_id, p.receiver_agent_id,
	p.origin_branch_id, ob.company_id AS origin_company_id,
	p.destination_branch_id, db.company_id AS destination_company_id,
	p.sender_name, p.sender_phone, p.receiver_name, p.receiver_phone,
	p.delivered_at, p.created_at, p.updated_at`

// packageRow is a package row with the columns joined in by packagesFrom.
type packageRow struct {
	packagerepo.PackageDTO
	StatusName           string
	OriginCompanyID      uuid.UUID
	DestinationCompanyID uuid.UUID
}

func packagesFrom(db *gorm.DB) *gorm.DB {
	return db.Table("packages AS p").
		Select(packageColumns).
		Joins("JOIN package_statuses s ON s.id = p.status_id").
		Joins("JOIN branches ob ON ob.id = p.origin_branch_id").
		Joins("JOIN branches db ON db.id = p.destination_branch_id")
}

// wherePackageScope narrows packagesFrom to scope. It must not be called with an empty
// scope; callers return no rows for those without querying.
func wherePackageScope(db *gorm.DB, scope services.Scope) *gorm.DB {
	switch scope.Kind() {
	case services.ScopeAgent:
		return db.Where(
			"p.sender_agent_id = ? OR p.receiver_agent_id = ? OR p.destination_branch_id = ?",
			scope.AgentID().Bytes(), scope.AgentID().Bytes(), scope.BranchID().Bytes(),
		)
	case services.ScopeBranch:
		return db.Where(
			"p.origin_branch_id = ? OR p.destination_branch_id = ?",
			scope.BranchID().Bytes(), scope.BranchID().Bytes(),
		)
	case services.ScopeCompany:
		return db.Where(
			"ob.company_id = ? OR db.company_id = ?",
			scope.CompanyID().Bytes(), scope.CompanyID().Bytes(),
		)
	default:
		return db
	}
}

func (row packageRow) toDomain() (*shipment.Package, error) {
	return packagerepo.ToDomain(row.PackageDTO, row.StatusName)
}

func (row packageRow) companies() (origin, destination kernel.UUID, err error) {
	if origin, err = kernel.UUIDFromBytes(row.OriginCompanyID[:]); err != nil {
		return origin, destination, err
	}
	destination, err = kernel.UUIDFromBytes(row.DestinationCompanyID[:])
	return origin, destination, err
}

func toPackages(rows []packageRow) ([]*shipment.Package, error) {
	packages := make([]*shipment.Package, 0, len(rows))
	for _, row := range rows {
		pkg, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}
