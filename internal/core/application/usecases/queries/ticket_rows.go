package queries

import (
	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

func whereTicketScope(db *gorm.DB, scope services.Scope) *gorm.DB {
	switch scope.Kind() {
	case services.ScopeBranch:
		return db.Where("t.branch_id = ?", scope.BranchID().Bytes())
	case services.ScopeCompany:
		return db.Where("t.company_id = ?", scope.CompanyID().Bytes())
	default:
		return db
	}
}
