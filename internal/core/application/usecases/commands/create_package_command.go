package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrCreatePackageCommandIsNotConstructed = errors.New(
	"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
)

// PackageInput is the client-writable part of a package registration, kept as received.
// References and scalars are parsed by the handler so that failures are reported in a
// fixed order, one field at a time.
type PackageInput struct {
	Name                string
	Weight              float64
	Value               string
	CategoryID          string
	DestinationBranchID string
	DriverID            string
	VehicleID           string
	DepartureTime       string
	Sender              shipment.Contact
	Receiver            shipment.Contact
}

// CreatePackageCommand registers a package and issues its ticket on behalf of an agent.
//
// Example:
//
//	cmd, err := NewCreatePackageCommand(principal, PackageInput{
//	    Name:                "Laptop",
//	    Value:               "1000",
//	    DestinationBranchID: mombasaID,
//	    DriverID:            driverID,
//	    VehicleID:           vehicleID,
//	    DepartureTime:       "2025-03-14T10:00:00Z",
//	    Sender:              shipment.Contact{Name: "Amina", Phone: "0700000001"},
//	    Receiver:            shipment.Contact{Name: "Baraka", Phone: "0700000002"},
//	})
//	result, err := handler.Handle(ctx, cmd)
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	requester identity.Principal
	input     PackageInput

	guard guard.ConstructorGuard
}

func NewCreatePackageCommand(requester identity.Principal, input PackageInput) (CreatePackageCommand, error) {
	if err := requester.Validate(); err != nil {
		return CreatePackageCommand{}, err
	}

	return CreatePackageCommand{
		requester: requester,
		input:     input,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

func (c CreatePackageCommand) Requester() identity.Principal {
	return c.requester
}

func (c CreatePackageCommand) Input() PackageInput {
	return c.input
}
