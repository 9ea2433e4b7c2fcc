package models

import "sort"

const DefaultCurrency = "USD"

var currencies = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF",
	"CNY": "¥",
	"INR": "₹",
	"BRL": "R$",
	"THB": "฿",
}

// CurrencySymbol returns the catalog symbol for code.
func CurrencySymbol(code string) (string, bool) {
	s, ok := currencies[code]
	return s, ok
}

// Currencies lists the supported codes in alphabetical order.
func Currencies() []string {
	out := make([]string, 0, len(currencies))
	for code := range currencies {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
