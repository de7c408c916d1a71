// Package currency форматирует денежные суммы в колумбийских песо.
// Формат совпадает с принятым в Колумбии: точка как разделитель тысяч,
// без дробной части ("COP $75.000").
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP возвращает сумму в виде "COP $1.234.567".
// Дробная часть отбрасывается: все суммы в системе кратны песо.
func FormatCOP(amount decimal.Decimal) string {
	digits := amount.Truncate(0).Abs().BigInt().String()

	var b strings.Builder
	b.WriteString("COP $")
	if amount.IsNegative() {
		b.WriteString("-")
	}

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(".")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(".")
		}
	}
	return b.String()
}
