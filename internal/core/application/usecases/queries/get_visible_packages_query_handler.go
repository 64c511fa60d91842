package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetVisiblePackagesQueryHandler translates the requester's package scope into a WHERE
// clause.
type GetVisiblePackagesQueryHandler struct {
	db *gorm.DB
}

func NewGetVisiblePackagesQueryHandler(db *gorm.DB) GetVisiblePackagesQueryHandler {
	return GetVisiblePackagesQueryHandler{db: db}
}

// Handle returns the visible packages ordered by creation time, newest first. A principal
// without a usable scope gets an empty slice.
func (h GetVisiblePackagesQueryHandler) Handle(
	ctx context.Context,
	query GetVisiblePackagesQuery,
) ([]*shipment.Package, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope := services.NewPackageScope(query.Requester())
	if scope.IsEmpty() {
		return []*shipment.Package{}, nil
	}

	tx := wherePackageScope(packagesFrom(h.db.WithContext(ctx)), scope)
	if status, ok := query.Status(); ok {
		tx = tx.Where("s.name = ?", status.String())
	}

	var rows []packageRow
	if err := tx.Order("p.created_at DESC").Order("p.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return toPackages(rows)
}
