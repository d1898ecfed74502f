// Package currency renders amounts the way the web client shows them:
// en-US grouping, two fraction digits, symbol prefix.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
}

// Format renders amount under the given currency code, e.g.
// Format(1234.56, "USD") == "$1,234.56". Unknown codes fall back to the bare
// code as prefix so nothing silently renders as dollars.
func Format(amount float64, code string) string {
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}

	d := decimal.NewFromFloat(amount)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// group inserts comma thousands separators into a digit string.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
