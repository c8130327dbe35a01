package pricing

import (
	"errors"
	"math"
)

const (
	// TaxRate is the flat tax applied to every order subtotal.
	TaxRate = 0.18

	shippingBaseRate = 40.0
)

var ErrInvalidPincode = errors.New("pincode must start with a digit")

// Round2 rounds to two decimal places. All derived prices pass through it
// so totals stay stable across recomputation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Tax returns the tax on a subtotal. Total function, zero subtotal is fine.
func Tax(subtotal float64) float64 {
	return Round2(subtotal * TaxRate)
}

// Shipping computes the shipping cost for a pincode: the base rate scaled
// by the delivery zone, which is the pincode's leading digit halved with a
// floor of 1. An empty pincode or a non-digit leading character is an
// error rather than a NaN.
func Shipping(pincode string) (float64, error) {
	if pincode == "" {
		return 0, ErrInvalidPincode
	}
	d := pincode[0]
	if d < '0' || d > '9' {
		return 0, ErrInvalidPincode
	}

	zone := float64(d-'0') / 2
	if zone < 1 {
		zone = 1
	}
	return Round2(shippingBaseRate * zone), nil
}
