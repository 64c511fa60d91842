// Package packagerepo persists the package aggregate.
package packagerepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageDTO is a row of the packages table. The status is stored as a reference to the
// lookup table; the name is read through status_id.
type PackageDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber      string          `gorm:"size:20;not null;uniqueIndex"`
	Name                string          `gorm:"size:100;not null"`
	Weight              float64         `gorm:"not null"`
	Value               decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ShippingFee         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CategoryID          *uuid.UUID      `gorm:"type:uuid"`
	StatusID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	SenderAgentID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiverAgentID     *uuid.UUID      `gorm:"type:uuid;index"`
	OriginBranchID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestinationBranchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SenderName          string          `gorm:"size:100;not null"`
	SenderPhone         string          `gorm:"size:20;not null"`
	ReceiverName        string          `gorm:"size:100;not null"`
	ReceiverPhone       string          `gorm:"size:20;not null"`
	DeliveredAt         *time.Time
	CreatedAt           time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(p *shipment.Package) PackageDTO {
	return PackageDTO{
		ID:                  p.ID().Bytes(),
		TrackingNumber:      p.TrackingNumber(),
		Name:                p.Name(),
		Weight:              p.Weight(),
		Value:               p.Value().Decimal(),
		ShippingFee:         p.ShippingFee().Decimal(),
		CategoryID:          kernel.BytesPtr(p.CategoryID()),
		StatusID:            p.StatusID().Bytes(),
		SenderAgentID:       p.SenderAgentID().Bytes(),
		ReceiverAgentID:     kernel.BytesPtr(p.ReceiverAgentID()),
		OriginBranchID:      p.OriginBranchID().Bytes(),
		DestinationBranchID: p.DestinationBranchID().Bytes(),
		SenderName:          p.Sender().Name,
		SenderPhone:         p.Sender().Phone,
		ReceiverName:        p.Receiver().Name,
		ReceiverPhone:       p.Receiver().Phone,
		DeliveredAt:         p.DeliveredAt(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

// ToDomain rebuilds a package from its row and the name of the status row it references.
// Query handlers that select whole package rows use it too.
func ToDomain(dto PackageDTO, statusName string) (*shipment.Package, error) {
	status, err := shipment.ParseStatus(statusName)
	if err != nil {
		return nil, err
	}

	state := shipment.PackageState{
		TrackingNumber: dto.TrackingNumber,
		Name:           dto.Name,
		Weight:         dto.Weight,
		Status:         status,
		Sender:         shipment.Contact{Name: dto.SenderName, Phone: dto.SenderPhone},
		Receiver:       shipment.Contact{Name: dto.ReceiverName, Phone: dto.ReceiverPhone},
		DeliveredAt:    utcPtr(dto.DeliveredAt),
		CreatedAt:      dto.CreatedAt.UTC(),
		UpdatedAt:      dto.UpdatedAt.UTC(),
	}

	for _, ref := range []struct {
		dst *kernel.UUID
		raw uuid.UUID
	}{
		{&state.ID, dto.ID},
		{&state.StatusID, dto.StatusID},
		{&state.SenderAgentID, dto.SenderAgentID},
		{&state.OriginBranchID, dto.OriginBranchID},
		{&state.DestinationBranchID, dto.DestinationBranchID},
	} {
		if *ref.dst, err = kernel.UUIDFromBytes(ref.raw[:]); err != nil {
			return nil, err
		}
	}
	if state.CategoryID, err = kernel.UUIDPtrFromBytes(dto.CategoryID); err != nil {
		return nil, err
	}
	if state.ReceiverAgentID, err = kernel.UUIDPtrFromBytes(dto.ReceiverAgentID); err != nil {
		return nil, err
	}
	if state.Value, err = kernel.NewMoney(dto.Value); err != nil {
		return nil, err
	}
	if state.ShippingFee, err = kernel.NewMoney(dto.ShippingFee); err != nil {
		return nil, err
	}

	return shipment.RestorePackage(state)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
