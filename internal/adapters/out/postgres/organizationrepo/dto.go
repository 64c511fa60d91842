// Package organizationrepo persists the reference data packages and tickets point at:
// companies, branches, agents, drivers, vehicles and categories.
package organizationrepo

import (
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"

	"github.com/google/uuid"
)

// CompanyDTO is a row of the companies table.
type CompanyDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"size:100;not null"`
	Address string
	Phone   string `gorm:"size:20"`
	Email   string
}

func (CompanyDTO) TableName() string {
	return "companies"
}

// BranchDTO is a row of the branches table.
type BranchDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Location  string
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (BranchDTO) TableName() string {
	return "branches"
}

// AgentDTO is a row of the agents table. The company is not stored; it is read through
// the branch.
type AgentDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name     string    `gorm:"size:100;not null"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (AgentDTO) TableName() string {
	return "agents"
}

// DriverDTO is a row of the drivers table. Like agents, drivers reach their company
// through the branch.
type DriverDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:100;not null"`
	LicenseNumber string    `gorm:"size:50;not null;uniqueIndex"`
	Phone         string    `gorm:"size:20"`
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO is a row of the vehicles table.
type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlateNumber string    `gorm:"size:20;not null;uniqueIndex"`
	Model       string    `gorm:"size:50"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID    uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// CategoryDTO is a row of the categories table.
type CategoryDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100;not null"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

// affiliatedRow is the result of joining an agent or driver with its branch.
type affiliatedRow struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	LicenseNumber string
	Phone         string
	BranchID      uuid.UUID
	CompanyID     uuid.UUID
}

func companyFromDomain(c *organization.Company) CompanyDTO {
	return CompanyDTO{
		ID:      c.ID().Bytes(),
		Name:    c.Name(),
		Address: c.Contact().Address,
		Phone:   c.Contact().Phone,
		Email:   c.Contact().Email,
	}
}

func companyToDomain(dto CompanyDTO) (*organization.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return organization.NewCompany(id, dto.Name, organization.Contact{
		Address: dto.Address,
		Phone:   dto.Phone,
		Email:   dto.Email,
	})
}

func branchFromDomain(b *organization.Branch) BranchDTO {
	return BranchDTO{
		ID:        b.ID().Bytes(),
		Name:      b.Name(),
		Location:  b.Location(),
		CompanyID: b.CompanyID().Bytes(),
	}
}

func branchToDomain(dto BranchDTO) (*organization.Branch, error) {
	ids, err := uuids(dto.ID, dto.CompanyID)
	if err != nil {
		return nil, err
	}
	return organization.NewBranch(ids[0], dto.Name, dto.Location, ids[1])
}

func agentFromDomain(a *organization.Agent) AgentDTO {
	return AgentDTO{
		ID:       a.ID().Bytes(),
		UserID:   a.UserID().Bytes(),
		Name:     a.Name(),
		BranchID: a.BranchID().Bytes(),
	}
}

func agentToDomain(row affiliatedRow) (*organization.Agent, error) {
	ids, err := uuids(row.ID, row.UserID, row.BranchID, row.CompanyID)
	if err != nil {
		return nil, err
	}
	return organization.NewAgent(ids[0], ids[1], row.Name, ids[2], ids[3])
}

func driverFromDomain(d *organization.Driver) DriverDTO {
	return DriverDTO{
		ID:            d.ID().Bytes(),
		Name:          d.Name(),
		LicenseNumber: d.LicenseNumber(),
		Phone:         d.Phone(),
		BranchID:      d.BranchID().Bytes(),
	}
}

func driverToDomain(row affiliatedRow) (*organization.Driver, error) {
	ids, err := uuids(row.ID, row.BranchID, row.CompanyID)
	if err != nil {
		return nil, err
	}
	return organization.NewDriver(ids[0], row.Name, row.LicenseNumber, row.Phone, ids[1], ids[2])
}

func vehicleFromDomain(v *organization.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          v.ID().Bytes(),
		PlateNumber: v.PlateNumber(),
		Model:       v.Model(),
		CompanyID:   v.CompanyID().Bytes(),
		DriverID:    v.DriverID().Bytes(),
	}
}

func vehicleToDomain(dto VehicleDTO) (*organization.Vehicle, error) {
	ids, err := uuids(dto.ID, dto.CompanyID, dto.DriverID)
	if err != nil {
		return nil, err
	}
	return organization.NewVehicle(ids[0], dto.PlateNumber, dto.Model, ids[1], ids[2])
}

func categoryFromDomain(c *organization.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID().Bytes(), Name: c.Name()}
}

func categoryToDomain(dto CategoryDTO) (*organization.Category, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return organization.NewCategory(id, dto.Name)
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
