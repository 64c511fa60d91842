package shipment

import "parcelhub/internal/core/domain/model/kernel"

const (
	TrackingNumberPrefix = "PKG-"
	TrackingNumberLength = 8
	TicketCodePrefix     = "TCK-"
	TicketCodeLength     = 6
)

// RandomCodes issues tracking numbers and ticket codes from random UUID bits. Uniqueness is
// left to the storage constraint; callers retry on conflict.
type RandomCodes struct{}

func (RandomCodes) TrackingNumber() string {
	return kernel.NewShortCode(TrackingNumberPrefix, TrackingNumberLength)
}

func (RandomCodes) TicketCode() string {
	return kernel.NewShortCode(TicketCodePrefix, TicketCodeLength)
}
