package services

import (
	"errors"

	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/pkg/errs"
)

var (
	ErrCrossCompanyDestination = errors.New("destination branch belongs to another company")
	ErrCrossCompanyDriver      = errors.New("driver belongs to another company")
	ErrCrossCompanyVehicle     = errors.New("vehicle belongs to another company")
	ErrVehicleDriverMismatch   = errors.New("vehicle is not assigned to the driver")
)

// IntakePolicy keeps a shipment inside the sending agent's company. Each check returns a
// ValueIsInvalidError keyed by the request field at fault.
type IntakePolicy struct{}

func NewIntakePolicy() IntakePolicy {
	return IntakePolicy{}
}

// CheckDestination requires the destination branch to be operated by the agent's company.
func (IntakePolicy) CheckDestination(agent *organization.Agent, destination *organization.Branch) error {
	if err := errors.Join(agent.Validate(), destination.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("destination_branch", err)
	}
	if !destination.BelongsTo(agent.CompanyID()) {
		return errs.NewValueIsInvalidErrorWithCause("destination_branch", ErrCrossCompanyDestination)
	}
	return nil
}

// CheckDriver requires the driver, through its branch, to work for the agent's company.
func (IntakePolicy) CheckDriver(agent *organization.Agent, driver *organization.Driver) error {
	if err := errors.Join(agent.Validate(), driver.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver", err)
	}
	if !driver.CompanyID().IsEqual(agent.CompanyID()) {
		return errs.NewValueIsInvalidErrorWithCause("driver", ErrCrossCompanyDriver)
	}
	return nil
}

// CheckVehicle requires the vehicle to belong to the agent's company and to be driven by
// the driver already accepted for the shipment.
func (IntakePolicy) CheckVehicle(
	agent *organization.Agent,
	driver *organization.Driver,
	vehicle *organization.Vehicle,
) error {
	if err := errors.Join(agent.Validate(), driver.Validate(), vehicle.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", err)
	}
	if !vehicle.CompanyID().IsEqual(agent.CompanyID()) {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", ErrCrossCompanyVehicle)
	}
	if !vehicle.IsDrivenBy(driver.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", ErrVehicleDriverMismatch)
	}
	return nil
}
