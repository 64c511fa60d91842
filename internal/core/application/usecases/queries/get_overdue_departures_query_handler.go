package queries

import (
	"context"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOverdueDeparturesQueryHandler struct {
	db *gorm.DB
}

func NewGetOverdueDeparturesQueryHandler(db *gorm.DB) GetOverdueDeparturesQueryHandler {
	return GetOverdueDeparturesQueryHandler{db: db}
}

// Handle lists overdue shipments, most overdue first.
func (h GetOverdueDeparturesQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueDeparturesQuery,
) ([]GetOverdueDeparturesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.ticket_code,
			t.package_id,
			p.tracking_number,
			t.branch_id,
			t.departure_time
		FROM tickets t
		JOIN packages p ON p.id = t.package_id
		JOIN package_statuses s ON s.id = p.status_id
		WHERE t.departure_time < ? AND s.name = ?
		ORDER BY t.departure_time, t.id
	`, query.now, shipment.Pending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overdue := make([]GetOverdueDeparturesQueryResponse, 0)
	for rows.Next() {
		var resp GetOverdueDeparturesQueryResponse
		var ticketID, packageID, branchID uuid.UUID
		var departure time.Time

		if err = rows.Scan(&ticketID, &resp.TicketCode, &packageID, &resp.TrackingNumber, &branchID, &departure); err != nil {
			return nil, err
		}

		if resp.TicketID, err = kernel.UUIDFromBytes(ticketID[:]); err != nil {
			return nil, err
		}
		if resp.PackageID, err = kernel.UUIDFromBytes(packageID[:]); err != nil {
			return nil, err
		}
		if resp.BranchID, err = kernel.UUIDFromBytes(branchID[:]); err != nil {
			return nil, err
		}
		resp.DepartureTime = departure.UTC()
		resp.Overdue = query.now.Sub(resp.DepartureTime)

		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
