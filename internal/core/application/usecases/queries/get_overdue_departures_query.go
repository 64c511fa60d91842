package queries

import (
	"errors"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrGetOverdueDeparturesQueryIsNotConstructed = errors.New(
	"GetOverdueDeparturesQuery must be created via NewGetOverdueDeparturesQuery constructor",
)

// GetOverdueDeparturesQuery finds shipments whose departure time has passed while the
// package is still Pending. It is an operational query and is not scoped to a principal.
type GetOverdueDeparturesQuery struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewGetOverdueDeparturesQuery(now time.Time) GetOverdueDeparturesQuery {
	return GetOverdueDeparturesQuery{now: now.UTC(), guard: guard.NewConstructorGuard()}
}

func (q GetOverdueDeparturesQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueDeparturesQueryIsNotConstructed)
}

// GetOverdueDeparturesQueryResponse describes one overdue shipment.
type GetOverdueDeparturesQueryResponse struct {
	TicketID       kernel.UUID
	TicketCode     string
	PackageID      kernel.UUID
	TrackingNumber string
	BranchID       kernel.UUID
	DepartureTime  time.Time
	// Overdue is how long ago the departure time passed.
	Overdue time.Duration
}
