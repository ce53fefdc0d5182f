// Package scheduling holds the pure calendar computations: the commission
// calculator and the column layout used to render overlapping appointments
// side by side. Everything here is deterministic and safe for concurrent use.
package scheduling

import "math"

// ComputeCommission returns the technician's earnings for a service price.
// PERCENTAGE takes commissionValue as a percent of the price; FIXED pays
// commissionValue regardless of price. Unknown types earn nothing.
func ComputeCommission(price float64, commissionType string, commissionValue float64) float64 {
	switch commissionType {
	case "PERCENTAGE":
		return price * commissionValue / 100
	case "FIXED":
		return commissionValue
	}
	return 0
}

// Round2 rounds to two decimals for display. Stored amounts keep whatever
// precision the caller submitted.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
