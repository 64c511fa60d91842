package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

var ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket or RestoreTicket")

// Assignment is the escort of a shipment: who drives it, in what, from where and when.
type Assignment struct {
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	BranchID      kernel.UUID
	CompanyID     kernel.UUID
	DepartureTime time.Time
}

// Ticket is the transport record bound one-to-one to a Package. It is issued together with
// its package and starts life already sent.
type Ticket struct {
	id            kernel.UUID
	code          string
	packageID     kernel.UUID
	driverID      kernel.UUID
	vehicleID     kernel.UUID
	branchID      kernel.UUID
	companyID     kernel.UUID
	departureTime time.Time
	amountPaid    kernel.Money
	status        TicketStatus
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewTicket issues the ticket for a freshly registered package. The amount paid mirrors the
// package's shipping fee and the departure must be strictly after now.
func NewTicket(id kernel.UUID, code string, pkg *Package, assignment Assignment, now time.Time) (*Ticket, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	now = now.UTC()
	t := &Ticket{
		packageID:  pkg.ID(),
		amountPaid: pkg.ShippingFee(),
		status:     TicketSent,
		createdAt:  now,
		updatedAt:  now,

		isConstructed: true,
	}

	if err := errors.Join(
		setRef(&t.id, "ticket", id),
		t.setCode(code),
		setRef(&t.driverID, "driver", assignment.DriverID),
		setRef(&t.vehicleID, "vehicle", assignment.VehicleID),
		setRef(&t.branchID, "branch", assignment.BranchID),
		setRef(&t.companyID, "company", assignment.CompanyID),
		t.setDepartureTime(assignment.DepartureTime, now),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// TicketState is the persisted form of a Ticket.
type TicketState struct {
	ID            kernel.UUID
	Code          string
	PackageID     kernel.UUID
	DriverID      kernel.UUID
	VehicleID     kernel.UUID
	BranchID      kernel.UUID
	CompanyID     kernel.UUID
	DepartureTime time.Time
	AmountPaid    kernel.Money
	Status        TicketStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreTicket rebuilds a ticket from storage. Departure time is not checked against the
// clock.
func RestoreTicket(state TicketState) (*Ticket, error) {
	t := &Ticket{
		departureTime: state.DepartureTime,
		amountPaid:    state.AmountPaid,
		status:        state.Status,
		createdAt:     state.CreatedAt,
		updatedAt:     state.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		setRef(&t.id, "ticket", state.ID),
		t.setCode(state.Code),
		setRef(&t.packageID, "package", state.PackageID),
		setRef(&t.driverID, "driver", state.DriverID),
		setRef(&t.vehicleID, "vehicle", state.VehicleID),
		setRef(&t.branchID, "branch", state.BranchID),
		setRef(&t.companyID, "company", state.CompanyID),
		state.AmountPaid.Validate(),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

func (t *Ticket) ID() kernel.UUID          { return t.id }
func (t *Ticket) Code() string             { return t.code }
func (t *Ticket) PackageID() kernel.UUID   { return t.packageID }
func (t *Ticket) DriverID() kernel.UUID    { return t.driverID }
func (t *Ticket) VehicleID() kernel.UUID   { return t.vehicleID }
func (t *Ticket) BranchID() kernel.UUID    { return t.branchID }
func (t *Ticket) CompanyID() kernel.UUID   { return t.companyID }
func (t *Ticket) DepartureTime() time.Time { return t.departureTime }
func (t *Ticket) AmountPaid() kernel.Money { return t.amountPaid }
func (t *Ticket) Status() TicketStatus     { return t.status }
func (t *Ticket) CreatedAt() time.Time     { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time     { return t.updatedAt }

// ChangeStatus sets the transport status. Any of the accepted values may follow any other;
// the package status is not touched.
func (t *Ticket) ChangeStatus(status TicketStatus, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	t.status = status
	t.updatedAt = now.UTC()
	return nil
}

// MarkDelivered is the ticket side of a delivery confirmation.
func (t *Ticket) MarkDelivered(now time.Time) {
	t.status = TicketDelivered
	t.updatedAt = now.UTC()
}

func (t *Ticket) setCode(code string) error {
	if !strings.HasPrefix(code, TicketCodePrefix) || len(code) == len(TicketCodePrefix) {
		return errs.NewValueIsInvalidErrorWithCause(
			"ticket_code",
			fmt.Errorf("%q does not start with %s", code, TicketCodePrefix),
		)
	}
	t.code = code
	return nil
}

func (t *Ticket) setDepartureTime(departure, now time.Time) error {
	if departure.IsZero() {
		return errs.NewValueIsRequiredError("departure_time")
	}
	if !departure.After(now) {
		return errs.NewValueIsInvalidErrorWithCause(
			"departure_time",
			fmt.Errorf("%s is not in the future", departure.UTC().Format(time.RFC3339)),
		)
	}
	t.departureTime = departure.UTC()
	return nil
}
