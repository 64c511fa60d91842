package queries

import (
	"context"

	"parcelhub/internal/adapters/out/postgres/ticketrepo"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"

	"gorm.io/gorm"
)

type GetVisibleTicketsQueryHandler struct {
	db *gorm.DB
}

func NewGetVisibleTicketsQueryHandler(db *gorm.DB) GetVisibleTicketsQueryHandler {
	return GetVisibleTicketsQueryHandler{db: db}
}

// Handle returns the tickets inside the requester's ticket scope ordered by departure.
func (h GetVisibleTicketsQueryHandler) Handle(
	ctx context.Context,
	query GetVisibleTicketsQuery,
) ([]*shipment.Ticket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope := services.NewTicketScope(query.Requester())
	if scope.IsEmpty() {
		return []*shipment.Ticket{}, nil
	}

	var rows []ticketrepo.TicketDTO
	err := whereTicketScope(h.db.WithContext(ctx).Table("tickets AS t").Select("t.*"), scope).
		Order("t.departure_time ASC").
		Order("t.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tickets := make([]*shipment.Ticket, 0, len(rows))
	for _, row := range rows {
		ticket, convErr := ticketrepo.ToDomain(row)
		if convErr != nil {
			return nil, convErr
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
