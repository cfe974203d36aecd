package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinter = message.NewPrinter(language.English)

// Format renders cents as a grouped decimal with two fraction digits,
// e.g. 123456789 -> "1,234,567.89". Used for display fields in API payloads.
func Format(c Cents) string {
	return displayPrinter.Sprint(number.Decimal(c.Float64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
