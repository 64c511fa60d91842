package queries

import (
	"context"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetPackageQueryHandler loads a single package and checks it against the requester's
// scope in memory.
type GetPackageQueryHandler struct {
	db *gorm.DB
}

func NewGetPackageQueryHandler(db *gorm.DB) GetPackageQueryHandler {
	return GetPackageQueryHandler{db: db}
}

func (h GetPackageQueryHandler) Handle(ctx context.Context, query GetPackageQuery) (*shipment.Package, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := packagesFrom(h.db.WithContext(ctx))
	key := query.trackingNumber
	if query.id != nil {
		tx = tx.Where("p.id = ?", query.id.Bytes())
		key = query.id.String()
	} else {
		tx = tx.Where("p.tracking_number = ?", query.trackingNumber)
	}

	var rows []packageRow
	if err := tx.Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("package", key)
	}

	pkg, err := rows[0].toDomain()
	if err != nil {
		return nil, err
	}
	origin, destination, err := rows[0].companies()
	if err != nil {
		return nil, err
	}

	if !services.NewPackageScope(query.Requester()).AllowsPackage(pkg, origin, destination) {
		return nil, errs.NewObjectNotFoundError("package", key)
	}
	return pkg, nil
}
