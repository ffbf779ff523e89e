package broker

import "github.com/shopspring/decimal"

// The broker counts money in integer minor units (cents of a vingd). The
// client exposes major units.

// FromMinorUnits converts a wire amount to vingds: 550 -> 5.5.
func FromMinorUnits(m int64) decimal.Decimal {
	return decimal.New(m, -2)
}

// ToMinorUnits converts vingds to a wire amount, truncating anything below
// one cent: 2.00 -> 200, 1.999 -> 199.
func ToMinorUnits(a decimal.Decimal) int64 {
	return a.Shift(2).Truncate(0).IntPart()
}

func minorToMajor(raw decimal.Decimal) decimal.Decimal {
	return raw.Shift(-2)
}
