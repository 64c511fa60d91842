package queries

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrGetPackageQueryIsNotConstructed = errors.New(
		"GetPackageQuery must be created via NewGetPackageQuery or NewFindPackageByTrackingNumberQuery",
	)
)

// GetPackageQuery fetches one package, by id or by tracking number, if the requester may
// see it. A package outside the requester's scope is reported as not found.
type GetPackageQuery struct {
	requester      identity.Principal
	id             *kernel.UUID
	trackingNumber string
	guard          guard.ConstructorGuard
}

// NewGetPackageQuery looks a package up by id.
func NewGetPackageQuery(requester identity.Principal, id kernel.UUID) (GetPackageQuery, error) {
	if err := errors.Join(requester.Validate(), id.Validate()); err != nil {
		return GetPackageQuery{}, err
	}
	return GetPackageQuery{requester: requester, id: &id, guard: guard.NewConstructorGuard()}, nil
}

// NewFindPackageByTrackingNumberQuery looks a package up by its tracking number.
// Surrounding blanks are ignored and letters are matched upper-case.
func NewFindPackageByTrackingNumberQuery(requester identity.Principal, trackingNumber string) (GetPackageQuery, error) {
	if err := requester.Validate(); err != nil {
		return GetPackageQuery{}, err
	}
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return GetPackageQuery{}, errs.NewValueIsRequiredError("tracking_number")
	}
	return GetPackageQuery{
		requester:      requester,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

func (q GetPackageQuery) Requester() identity.Principal {
	return q.requester
}

// TrackingNumber is empty for lookups by id.
func (q GetPackageQuery) TrackingNumber() string {
	return q.trackingNumber
}
