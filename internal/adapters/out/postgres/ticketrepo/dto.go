// Package ticketrepo persists shipment tickets.
package ticketrepo

import (
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketDTO is a row of the tickets table. package_id is unique: a package has at most
// one ticket.
type TicketDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TicketCode    string          `gorm:"size:20;not null;uniqueIndex"`
	PackageID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	DriverID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DepartureTime time.Time       `gorm:"not null;index"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status        string          `gorm:"size:20;not null"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (TicketDTO) TableName() string {
	return "tickets"
}

func fromDomain(t *shipment.Ticket) TicketDTO {
	return TicketDTO{
		ID:            t.ID().Bytes(),
		TicketCode:    t.Code(),
		PackageID:     t.PackageID().Bytes(),
		DriverID:      t.DriverID().Bytes(),
		VehicleID:     t.VehicleID().Bytes(),
		BranchID:      t.BranchID().Bytes(),
		CompanyID:     t.CompanyID().Bytes(),
		DepartureTime: t.DepartureTime(),
		AmountPaid:    t.AmountPaid().Decimal(),
		Status:        t.Status().String(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

// ToDomain rebuilds a ticket from its row.
func ToDomain(dto TicketDTO) (*shipment.Ticket, error) {
	state := shipment.TicketState{
		Code:          dto.TicketCode,
		DepartureTime: dto.DepartureTime.UTC(),
		Status:        shipment.TicketStatus(dto.Status),
		CreatedAt:     dto.CreatedAt.UTC(),
		UpdatedAt:     dto.UpdatedAt.UTC(),
	}

	var err error
	for _, ref := range []struct {
		dst *kernel.UUID
		raw uuid.UUID
	}{
		{&state.ID, dto.ID},
		{&state.PackageID, dto.PackageID},
		{&state.DriverID, dto.DriverID},
		{&state.VehicleID, dto.VehicleID},
		{&state.BranchID, dto.BranchID},
		{&state.CompanyID, dto.CompanyID},
	} {
		if *ref.dst, err = kernel.UUIDFromBytes(ref.raw[:]); err != nil {
			return nil, err
		}
	}
	if state.AmountPaid, err = kernel.NewMoney(dto.AmountPaid); err != nil {
		return nil, err
	}

	return shipment.RestoreTicket(state)
}
