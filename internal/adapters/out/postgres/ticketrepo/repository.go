package ticketrepo

import (
	"context"
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormTicketRepository implements ports.TicketRepository using GORM.
type GormTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormTicketRepository {
	return &GormTicketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a ticket. Both a taken ticket code and a second ticket for the same package
// violate a unique index and come back as a conflict.
func (r *GormTicketRepository) Add(ctx context.Context, ticket *shipment.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ticket)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("ticket", err)
		}
		return err
	}

	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

// Update writes the ticket status.
func (r *GormTicketRepository) Update(ctx context.Context, ticket *shipment.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ticket)
	result := r.db.WithContext(ctx).Model(&TicketDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", ticket.ID().String())
	}

	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "id = ?", id.Bytes(), "ticket", id)
}

func (r *GormTicketRepository) GetByPackage(ctx context.Context, packageID kernel.UUID) (*shipment.Ticket, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "package_id = ?", packageID.Bytes(), "ticket for package", packageID)
}

func (r *GormTicketRepository) first(
	ctx context.Context,
	where string,
	arg any,
	paramName string,
	id kernel.UUID,
) (*shipment.Ticket, error) {
	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, where, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, id.String())
		}
		return nil, err
	}
	return ToDomain(dto)
}
