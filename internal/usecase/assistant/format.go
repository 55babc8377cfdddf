package assistant

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// formatBRL renders an amount the way shop owners read it, e.g. "R$ 1.234,50".
func formatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
