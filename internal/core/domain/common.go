package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept on every derived monetary value.
const MoneyPlaces int32 = 2

// RoundMoney rounds a derived amount to MoneyPlaces. Stored values are never passed through it.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// IsWholeCents reports whether d has at most MoneyPlaces decimal places.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyPlaces))
}
