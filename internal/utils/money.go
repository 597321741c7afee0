package utils

import "math"

// CostTolerance is the comparison tolerance for monetary amounts
const CostTolerance = 0.01

// CostsEqual compares two monetary amounts within the standard tolerance
func CostsEqual(a, b float64) bool {
	return math.Abs(a-b) < CostTolerance
}

// Round2 rounds a monetary amount to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
