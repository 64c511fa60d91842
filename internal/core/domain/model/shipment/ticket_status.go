package shipment

import (
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
)

// TicketStatus is the transport state of a ticket. It is owned by the ticket and advanced
// independently of the package Status; only delivery confirmation moves both.
type TicketStatus string

const (
	TicketSent      TicketStatus = "sent"
	TicketReceived  TicketStatus = "received"
	TicketDelivered TicketStatus = "delivered"
)

// TicketStatuses lists the accepted values in the order they are reported to callers.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketSent, TicketReceived, TicketDelivered}
}

// ParseTicketStatus accepts exactly the lowercase names in TicketStatuses.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	status := TicketStatus(raw)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s TicketStatus) Validate() error {
	for _, allowed := range TicketStatuses() {
		if s == allowed {
			return nil
		}
	}
	names := make([]string, 0, len(TicketStatuses()))
	for _, allowed := range TicketStatuses() {
		names = append(names, string(allowed))
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of: %s", string(s), strings.Join(names, ", ")),
	)
}

func (s TicketStatus) String() string {
	return string(s)
}
