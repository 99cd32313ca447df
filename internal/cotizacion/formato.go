package cotizacion

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amounts use comma grouping and a decimal point regardless of currency.
var impresora = message.NewPrinter(language.AmericanEnglish)

// FormatearMoneda rounds to cents and groups thousands: "$1,234.50 MXN".
func FormatearMoneda(v decimal.Decimal, m Moneda) string {
	r := v.Round(2)
	abs := r.Abs()
	fijo := abs.StringFixed(2)

	signo := ""
	if r.IsNegative() {
		signo = "-"
	}
	if m == "" {
		m = MonedaMXN
	}
	return impresora.Sprintf("%s$%d.%s %s", signo, abs.IntPart(), fijo[len(fijo)-2:], m)
}
