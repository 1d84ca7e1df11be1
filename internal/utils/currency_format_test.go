package utils

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R$ 0,00"},
		{"3.9", "R$ 3,90"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-180", "R$ -180,00"},
		{"-0.5", "R$ -0,50"},
		{"98765432109876543.21", "R$ 98.765.432.109.876.543,21"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "05/02/2024", FormatDateBR(civil.Date{Year: 2024, Month: time.February, Day: 5}))
	assert.Equal(t, "31/12/12024", FormatDateBR(civil.Date{Year: 12024, Month: time.December, Day: 31}))
}

func TestFormatMonthBR(t *testing.T) {
	assert.Equal(t, "03/2024", FormatMonthBR("2024-03"))
	assert.Equal(t, "2024", FormatMonthBR("2024"))
}
