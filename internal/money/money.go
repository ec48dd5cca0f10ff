// Package money renders naira amounts for display and outbound messages.
//
// Prices are carried as int64 minor units. The naira has no fractional
// subunit in normal use, so amounts render with grouping and zero decimal
// places: 17000 -> "₦17,000".
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the currency prefix used across catalog display and order
// messages.
const Symbol = "₦"

var printer = message.NewPrinter(language.English)

// Format renders an amount with the naira symbol and comma grouping.
func Format(amount int64) string {
	return Symbol + printer.Sprintf("%d", amount)
}
