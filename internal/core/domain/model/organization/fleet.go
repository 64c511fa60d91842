package organization

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrDriverIsNotConstructed   = errors.New("Driver must be created via NewDriver")
	ErrVehicleIsNotConstructed  = errors.New("Vehicle must be created via NewVehicle")
	ErrCategoryIsNotConstructed = errors.New("Category must be created via NewCategory")
)

// Driver escorts tickets. A driver is scoped through its branch; companyID is the
// branch's company, resolved when the driver is loaded.
type Driver struct {
	id            kernel.UUID
	name          string
	licenseNumber string
	phone         string
	branchID      kernel.UUID
	companyID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewDriver(id kernel.UUID, name, licenseNumber, phone string, branchID, companyID kernel.UUID) (*Driver, error) {
	d := &Driver{phone: strings.TrimSpace(phone), guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&d.id, id),
		setName(&d.name, "driver name", name),
		setName(&d.licenseNumber, "license number", licenseNumber),
		setRef(&d.branchID, "branch", branchID),
		setRef(&d.companyID, "company", companyID),
	); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.UUID        { return d.id }
func (d *Driver) Name() string           { return d.name }
func (d *Driver) LicenseNumber() string  { return d.licenseNumber }
func (d *Driver) Phone() string          { return d.phone }
func (d *Driver) BranchID() kernel.UUID  { return d.branchID }
func (d *Driver) CompanyID() kernel.UUID { return d.companyID }

// Vehicle is driven by one driver and, redundantly, owned by a company.
type Vehicle struct {
	id          kernel.UUID
	plateNumber string
	model       string
	companyID   kernel.UUID
	driverID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewVehicle(id kernel.UUID, plateNumber, model string, companyID, driverID kernel.UUID) (*Vehicle, error) {
	v := &Vehicle{model: strings.TrimSpace(model), guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&v.id, id),
		setName(&v.plateNumber, "plate number", plateNumber),
		setRef(&v.companyID, "company", companyID),
		setRef(&v.driverID, "driver", driverID),
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID        { return v.id }
func (v *Vehicle) PlateNumber() string    { return v.plateNumber }
func (v *Vehicle) Model() string          { return v.model }
func (v *Vehicle) CompanyID() kernel.UUID { return v.companyID }
func (v *Vehicle) DriverID() kernel.UUID  { return v.driverID }

// IsDrivenBy reports whether the vehicle is assigned to the driver.
func (v *Vehicle) IsDrivenBy(driverID kernel.UUID) bool {
	return v.driverID.IsEqual(driverID)
}

// Category is an optional classification of a package.
type Category struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

func NewCategory(id kernel.UUID, name string) (*Category, error) {
	c := &Category{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		setID(&c.id, id),
		setName(&c.name, "category name", name),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrCategoryIsNotConstructed
	}
	return c.guard.Validate(ErrCategoryIsNotConstructed)
}

func (c *Category) ID() kernel.UUID { return c.id }
func (c *Category) Name() string    { return c.name }
