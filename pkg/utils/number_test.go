package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "valor monetário padrão", input: "35.38", expected: 35.38},
		{name: "inteiro", input: "45", expected: 45},
		{name: "com espaços", input: "  1.10 ", expected: 1.1},
		{name: "vazio vira zero", input: "", expected: 0},
		{name: "texto inválido vira zero", input: "abc", expected: 0},
		{name: "parcialmente numérico vira zero", input: "12,34", expected: 0},
		{name: "NaN vira zero", input: "NaN", expected: 0},
		{name: "infinito vira zero", input: "Inf", expected: 0},
		{name: "negativo é preservado", input: "-3.5", expected: -3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDecimal(tt.input))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "3.10", FormatMoney(3.1))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "17.69", FormatMoney(17.690))
	assert.Equal(t, "0.16", FormatMoney(0.15714285714285717))
}

func TestFormatPercentBR(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0%"},
		{42, "42%"},
		{42.5, "42,5%"},
		{1234.5, "1.234,5%"},
		{1000000, "1.000.000%"},
		{-150.4, "-150,4%"},
		{299.96, "300%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPercentBR(tt.input))
	}
}
