package http

import (
	"bytes"
	"encoding/json"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewPackage is the client-writable part of a package. Anything else in the body,
// shipping_fee included, is ignored.
type NewPackage struct {
	Name                string      `json:"name"`
	Weight              float64     `json:"weight"`
	Value               decimalText `json:"value"`
	CategoryID          string      `json:"category_id"`
	DestinationBranchID string      `json:"destination_branch_id"`
	DriverID            string      `json:"driver_id"`
	VehicleID           string      `json:"vehicle_id"`
	DepartureTime       string      `json:"departure_time"`
	SenderName          string      `json:"sender_name"`
	SenderPhone         string      `json:"sender_phone"`
	ReceiverName        string      `json:"receiver_name"`
	ReceiverPhone       string      `json:"receiver_phone"`
}

func (p NewPackage) toInput() commands.PackageInput {
	return commands.PackageInput{
		Name:                p.Name,
		Weight:              p.Weight,
		Value:               string(p.Value),
		CategoryID:          p.CategoryID,
		DestinationBranchID: p.DestinationBranchID,
		DriverID:            p.DriverID,
		VehicleID:           p.VehicleID,
		DepartureTime:       p.DepartureTime,
		Sender:              shipment.Contact{Name: p.SenderName, Phone: p.SenderPhone},
		Receiver:            shipment.Contact{Name: p.ReceiverName, Phone: p.ReceiverPhone},
	}
}

// decimalText accepts a JSON string or number and keeps its text for the handler to
// parse.
type decimalText string

func (d *decimalText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*d = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimalText(s)
		return nil
	default:
		*d = decimalText(data)
		return nil
	}
}

type TicketStatusChange struct {
	Status string `json:"status"`
}

type Package struct {
	ID                  openapi_types.UUID  `json:"id"`
	TrackingNumber      string              `json:"tracking_number"`
	Name                string              `json:"name"`
	Weight              float64             `json:"weight"`
	Value               string              `json:"value"`
	ShippingFee         string              `json:"shipping_fee"`
	CategoryID          *openapi_types.UUID `json:"category_id"`
	Status              string              `json:"status"`
	SenderAgentID       openapi_types.UUID  `json:"sender_agent_id"`
	ReceiverAgentID     *openapi_types.UUID `json:"receiver_agent_id"`
	OriginBranchID      openapi_types.UUID  `json:"origin_branch_id"`
	DestinationBranchID openapi_types.UUID  `json:"destination_branch_id"`
	SenderName          string              `json:"sender_name"`
	SenderPhone         string              `json:"sender_phone"`
	ReceiverName        string              `json:"receiver_name"`
	ReceiverPhone       string              `json:"receiver_phone"`
	DeliveredAt         *time.Time          `json:"delivered_at"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func toPackage(p *shipment.Package) Package {
	return Package{
		ID:                  p.ID().Bytes(),
		TrackingNumber:      p.TrackingNumber(),
		Name:                p.Name(),
		Weight:              p.Weight(),
		Value:               p.Value().String(),
		ShippingFee:         p.ShippingFee().String(),
		CategoryID:          kernel.BytesPtr(p.CategoryID()),
		Status:              p.Status().String(),
		SenderAgentID:       p.SenderAgentID().Bytes(),
		ReceiverAgentID:     kernel.BytesPtr(p.ReceiverAgentID()),
		OriginBranchID:      p.OriginBranchID().Bytes(),
		DestinationBranchID: p.DestinationBranchID().Bytes(),
		SenderName:          p.Sender().Name,
		SenderPhone:         p.Sender().Phone,
		ReceiverName:        p.Receiver().Name,
		ReceiverPhone:       p.Receiver().Phone,
		DeliveredAt:         p.DeliveredAt(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func toPackages(packages []*shipment.Package) []Package {
	response := make([]Package, len(packages))
	for i, p := range packages {
		response[i] = toPackage(p)
	}
	return response
}

type Ticket struct {
	ID            openapi_types.UUID `json:"id"`
	TicketCode    string             `json:"ticket_code"`
	PackageID     openapi_types.UUID `json:"package_id"`
	DriverID      openapi_types.UUID `json:"driver_id"`
	VehicleID     openapi_types.UUID `json:"vehicle_id"`
	BranchID      openapi_types.UUID `json:"branch_id"`
	CompanyID     openapi_types.UUID `json:"company_id"`
	DepartureTime time.Time          `json:"departure_time"`
	AmountPaid    string             `json:"amount_paid"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func toTicket(t *shipment.Ticket) Ticket {
	return Ticket{
		ID:            t.ID().Bytes(),
		TicketCode:    t.Code(),
		PackageID:     t.PackageID().Bytes(),
		DriverID:      t.DriverID().Bytes(),
		VehicleID:     t.VehicleID().Bytes(),
		BranchID:      t.BranchID().Bytes(),
		CompanyID:     t.CompanyID().Bytes(),
		DepartureTime: t.DepartureTime(),
		AmountPaid:    t.AmountPaid().String(),
		Status:        t.Status().String(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}

func toTickets(tickets []*shipment.Ticket) []Ticket {
	response := make([]Ticket, len(tickets))
	for i, t := range tickets {
		response[i] = toTicket(t)
	}
	return response
}

// Shipment is the response to a package registration.
type Shipment struct {
	Package Package `json:"package"`
	Ticket  Ticket  `json:"ticket"`
}
