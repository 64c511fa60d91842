package statusrepo

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPackageStatusRepository implements ports.PackageStatusRepository. Every record it
// returns from the database is tracked, so the unit of work can publish it to the cache
// once the transaction commits.
type GormPackageStatusRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	cache   ports.StatusCache
}

// NewGormPackageStatusRepository creates the repository. cache may be nil.
func NewGormPackageStatusRepository(
	db *gorm.DB,
	tracker aggregateTracker,
	cache ports.StatusCache,
) *GormPackageStatusRepository {
	return &GormPackageStatusRepository{
		db:      db,
		tracker: tracker,
		cache:   cache,
	}
}

// Ensure inserts the row for status unless one with that name exists, then reads it
// back. The insert never fails on a name collision, so concurrent first use is safe.
func (r *GormPackageStatusRepository) Ensure(
	ctx context.Context,
	status shipment.Status,
	updatedBy *kernel.UUID,
) (shipment.StatusRecord, error) {
	if err := status.Validate(); err != nil {
		return shipment.StatusRecord{}, err
	}

	if r.cache != nil {
		// A failing cache degrades to the database.
		if record, found, err := r.cache.Get(ctx, status); err == nil && found {
			return record, nil
		}
	}

	candidate := StatusDTO{
		ID:        kernel.NewUUID().Bytes(),
		Name:      status.String(),
		UpdatedBy: kernel.BytesPtr(updatedBy),
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&candidate).Error
	if err != nil {
		return shipment.StatusRecord{}, err
	}

	var stored StatusDTO
	if err = r.db.WithContext(ctx).Where("name = ?", status.String()).Take(&stored).Error; err != nil {
		return shipment.StatusRecord{}, err
	}

	record, err := toDomain(stored)
	if err != nil {
		return shipment.StatusRecord{}, err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return record, nil
}
