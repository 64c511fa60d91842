package shipment

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrStatusRecordIsNotConstructed = errors.New("StatusRecord must be created via NewStatusRecord")

// StatusRecord is a row of the package status lookup table. Packages reference the row
// rather than storing the status name.
type StatusRecord struct {
	id        kernel.UUID
	status    Status
	updatedBy *kernel.UUID
	updatedAt time.Time

	guard guard.ConstructorGuard
}

func NewStatusRecord(id kernel.UUID, status Status, updatedBy *kernel.UUID, updatedAt time.Time) (StatusRecord, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return StatusRecord{}, err
	}
	return StatusRecord{
		id:        id,
		status:    status,
		updatedBy: updatedBy,
		updatedAt: updatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r StatusRecord) Validate() error {
	return r.guard.Validate(ErrStatusRecordIsNotConstructed)
}

func (r StatusRecord) ID() kernel.UUID {
	return r.id
}

func (r StatusRecord) Status() Status {
	return r.status
}

func (r StatusRecord) Name() string {
	return r.status.String()
}

// UpdatedBy is the identity record that last touched the row, if known.
func (r StatusRecord) UpdatedBy() *kernel.UUID {
	return r.updatedBy
}

func (r StatusRecord) UpdatedAt() time.Time {
	return r.updatedAt
}
