// Package money formatea importes al estilo rioplatense: punto de miles y coma decimal.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format redondea a 2 decimales. Ej: 1500 → "1.500,00", -12.5 → "-12,50".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if d.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}

// Label antepone el signo: "$ 1.500,00".
func Label(d decimal.Decimal) string {
	return "$ " + Format(d)
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
