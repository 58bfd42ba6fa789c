package service

import (
	"github.com/shopspring/decimal"
)

// minorUnitPlaces is the number of decimal places of the billing currency
const minorUnitPlaces = 2

// Charges is the result of pricing a consumption
type Charges struct {
	WaterCharges decimal.Decimal
	TotalAmount  decimal.Decimal
}

// ComputeCharges prices consumption at rate and adds the service charges.
// Water charges are rounded half-up to the minor unit before the total is taken.
func ComputeCharges(consumption, rate, serviceCharges decimal.Decimal) (Charges, error) {
	switch {
	case consumption.IsNegative():
		return Charges{}, invalidf("water_consumption must not be negative")
	case rate.IsNegative():
		return Charges{}, invalidf("rate_per_unit must not be negative")
	case serviceCharges.IsNegative():
		return Charges{}, invalidf("service_charges must not be negative")
	}

	water := consumption.Mul(rate).Round(minorUnitPlaces)
	total := water.Add(serviceCharges.Round(minorUnitPlaces))

	return Charges{WaterCharges: water, TotalAmount: total}, nil
}
