package shipment

import (
	"parcelhub/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var shippingFeeRate = decimal.New(10, -2)

// ShippingFeeRate is the share of the declared value charged for transport.
func ShippingFeeRate() decimal.Decimal {
	return shippingFeeRate
}

// ShippingFee derives the fee from the declared value, rounded half away from zero to
// two decimal places. It is the only source of a package's shipping fee.
func ShippingFee(value kernel.Money) kernel.Money {
	return value.MultiplyRounded(shippingFeeRate)
}
