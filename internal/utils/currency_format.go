package utils

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	fixed := rounded.StringFixed(2)
	cents := fixed[len(fixed)-2:]
	return "R$ " + sign + brPrinter.Sprint(number.Decimal(rounded.IntPart())) + "," + cents
}

// FormatDateBR renders a calendar date as dd/mm/yyyy.
func FormatDateBR(d civil.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// FormatMonthBR renders a YYYY-MM month key as mm/yyyy. Malformed keys are returned unchanged.
func FormatMonthBR(monthKey string) string {
	if len(monthKey) != 7 || monthKey[4] != '-' {
		return monthKey
	}
	return monthKey[5:] + "/" + monthKey[:4]
}
