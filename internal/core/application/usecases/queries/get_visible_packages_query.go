package queries

import (
	"errors"
	"strings"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/guard"
)

var ErrGetVisiblePackagesQueryIsNotConstructed = errors.New(
	"GetVisiblePackagesQuery must be created via NewGetVisiblePackagesQuery constructor",
)

// GetVisiblePackagesQuery lists the packages a principal may see, newest first, optionally
// restricted to one status.
//
//	query, err := NewGetVisiblePackagesQuery(principal, "Pending")
//	packages, err := NewGetVisiblePackagesQueryHandler(db).Handle(ctx, query)
type GetVisiblePackagesQuery struct {
	requester identity.Principal
	status    shipment.Status
	guard     guard.ConstructorGuard
}

// NewGetVisiblePackagesQuery builds the query. An empty status means every status;
// anything else must name a package status.
func NewGetVisiblePackagesQuery(requester identity.Principal, status string) (GetVisiblePackagesQuery, error) {
	if err := requester.Validate(); err != nil {
		return GetVisiblePackagesQuery{}, err
	}

	q := GetVisiblePackagesQuery{requester: requester, guard: guard.NewConstructorGuard()}
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := shipment.ParseStatus(status)
		if err != nil {
			return GetVisiblePackagesQuery{}, err
		}
		q.status = parsed
	}
	return q, nil
}

func (q GetVisiblePackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetVisiblePackagesQueryIsNotConstructed)
}

func (q GetVisiblePackagesQuery) Requester() identity.Principal {
	return q.requester
}

// Status returns the filter and whether one is set.
func (q GetVisiblePackagesQuery) Status() (shipment.Status, bool) {
	return q.status, q.status != shipment.UnknownStatus
}
