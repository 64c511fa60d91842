package queries

import (
	"errors"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/pkg/guard"
)

var ErrGetVisibleTicketsQueryIsNotConstructed = errors.New(
	"GetVisibleTicketsQuery must be created via NewGetVisibleTicketsQuery constructor",
)

// GetVisibleTicketsQuery lists the tickets a principal may see, earliest departure first.
type GetVisibleTicketsQuery struct {
	requester identity.Principal
	guard     guard.ConstructorGuard
}

func NewGetVisibleTicketsQuery(requester identity.Principal) (GetVisibleTicketsQuery, error) {
	if err := requester.Validate(); err != nil {
		return GetVisibleTicketsQuery{}, err
	}
	return GetVisibleTicketsQuery{requester: requester, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVisibleTicketsQuery) Validate() error {
	return q.guard.Validate(ErrGetVisibleTicketsQueryIsNotConstructed)
}

func (q GetVisibleTicketsQuery) Requester() identity.Principal {
	return q.requester
}
