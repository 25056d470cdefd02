package domain

import "github.com/shopspring/decimal"

// PriceToCents converts a decimal price into cents. Prices must be positive and carry
// at most two fraction digits.
func PriceToCents(price decimal.Decimal) (int64, error) {
	if !price.IsPositive() {
		return 0, Invalid("price must be positive")
	}
	cents := price.Shift(2)
	if !cents.IsInteger() {
		return 0, Invalid("price must have at most two decimal places")
	}
	return cents.IntPart(), nil
}

// CentsToPrice is the inverse of PriceToCents.
func CentsToPrice(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
