package services

import (
	"errors"
	"fmt"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"
)

// RequireAgent rejects principals that do not act as an agent.
func RequireAgent(p identity.Principal) error {
	if !p.IsAgent() {
		return errs.NewForbiddenError("only agents may perform this operation")
	}
	return nil
}

// AuthorizeDelivery allows only an agent working at the package's destination branch to
// confirm its delivery.
func AuthorizeDelivery(agent *organization.Agent, pkg *shipment.Package) error {
	if err := errors.Join(agent.Validate(), pkg.Validate()); err != nil {
		return err
	}
	if !pkg.IsDestinedFor(agent.BranchID()) {
		return errs.NewForbiddenError(
			fmt.Sprintf("package %s is not destined for the agent's branch", pkg.TrackingNumber()),
		)
	}
	return nil
}
