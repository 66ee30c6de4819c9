package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseDecimal converte um campo numérico armazenado como texto (valores
// monetários e taxas das tabelas por cliente) em float64. Valores vazios ou
// mal formados resultam em 0 — um registro ruim nunca interrompe a agregação.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return f
}

// FormatMoney formata um valor monetário com duas casas decimais, no mesmo
// formato textual em que as tabelas de origem armazenam dinheiro.
func FormatMoney(f float64) string {
	return strconv.FormatFloat(RoundWithTwoDecimalPlace(f), 'f', 2, 64)
}

// FormatPercentBR formata um percentual no padrão pt-BR: separador de milhar
// "." e até uma casa decimal com vírgula (ex.: 1.234,5%).
func FormatPercentBR(f float64) string {
	rounded := math.Round(f*10) / 10

	intPart := int64(math.Abs(rounded))
	frac := math.Abs(rounded) - float64(intPart)

	digits := strconv.FormatInt(intPart, 10)
	var b strings.Builder

	if rounded < 0 {
		b.WriteByte('-')
	}

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	if tenth := int(math.Round(frac * 10)); tenth >= 1 {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(tenth))
	}

	b.WriteByte('%')
	return b.String()
}
