// Package shipment contains the aggregate of the back office: a Package registered by an
// agent together with the Ticket that records its escort.
//
// The package carries the delivery lifecycle (Status, backed by the StatusRecord lookup
// rows) and the ticket carries its own transport status (TicketStatus). The two are
// independent sub-states. Delivery confirmation advances both; a ticket status update
// only touches the ticket.
//
// Derived values live here too: the shipping fee (ShippingFee) and the tracking number and
// ticket code formats (RandomCodes).
package shipment
