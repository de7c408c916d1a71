package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "COP $0"},
		{"under a thousand", decimal.NewFromInt(999), "COP $999"},
		{"fund minimum", decimal.NewFromInt(75000), "COP $75.000"},
		{"initial balance", decimal.NewFromInt(500000), "COP $500.000"},
		{"millions", decimal.NewFromInt(1234567), "COP $1.234.567"},
		{"drops cents", decimal.NewFromFloat(50000.75), "COP $50.000"},
		{"negative", decimal.NewFromInt(-1000), "COP $-1.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCOP(tt.amount))
		})
	}
}
