// Package statusrepo persists the package status lookup table.
package statusrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// StatusDTO is a row of the package_statuses table. Rows are keyed by name and are never
// deleted.
type StatusDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"size:50;not null;uniqueIndex"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime:false"`
}

func (StatusDTO) TableName() string {
	return "package_statuses"
}

func toDomain(dto StatusDTO) (shipment.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return shipment.StatusRecord{}, err
	}
	status, err := shipment.ParseStatus(dto.Name)
	if err != nil {
		return shipment.StatusRecord{}, err
	}
	updatedBy, err := kernel.UUIDPtrFromBytes(dto.UpdatedBy)
	if err != nil {
		return shipment.StatusRecord{}, err
	}
	return shipment.NewStatusRecord(id, status, updatedBy, dto.UpdatedAt)
}
