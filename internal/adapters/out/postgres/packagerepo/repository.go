package packagerepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPackageRepository implements ports.PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new package. A tracking number that is already taken is a conflict.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *shipment.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("tracking_number", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the columns that change after registration: the status, the receiving
// agent and the timestamps.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *shipment.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PackageDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status_id":         dto.StatusID,
		"receiver_agent_id": dto.ReceiverAgentID,
		"delivered_at":      dto.DeliveredAt,
		"updated_at":        dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Package, error) {
	return r.get(ctx, id, r.db.WithContext(ctx))
}

// GetForUpdate retrieves a package and locks its row until the surrounding transaction
// ends. Outside a transaction the lock is released as soon as the read completes.
func (r *GormPackageRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Package, error) {
	return r.get(ctx, id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}))
}

func (r *GormPackageRepository) get(ctx context.Context, id kernel.UUID, db *gorm.DB) (*shipment.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	var names []string
	err := r.db.WithContext(ctx).
		Table("package_statuses").
		Where("id = ?", dto.StatusID).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errs.NewObjectNotFoundError("package status", dto.StatusID.String())
	}

	return ToDomain(dto, names[0])
}
