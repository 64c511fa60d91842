package commands

import (
	"errors"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrMarkPackageDeliveredCommandIsNotConstructed = errors.New(
	"MarkPackageDeliveredCommand must be created via NewMarkPackageDeliveredCommand constructor",
)

// MarkPackageDeliveredCommand confirms that a package reached its destination branch.
type MarkPackageDeliveredCommand struct { //nolint:recvcheck //using for validation
	requester identity.Principal
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkPackageDeliveredCommand(requester identity.Principal, packageID kernel.UUID) (MarkPackageDeliveredCommand, error) {
	if err := errors.Join(requester.Validate(), packageID.Validate()); err != nil {
		return MarkPackageDeliveredCommand{}, err
	}

	return MarkPackageDeliveredCommand{
		requester: requester,
		packageID: packageID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkPackageDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkPackageDeliveredCommandIsNotConstructed)
}

func (c MarkPackageDeliveredCommand) Requester() identity.Principal {
	return c.requester
}

func (c MarkPackageDeliveredCommand) PackageID() kernel.UUID {
	return c.packageID
}
