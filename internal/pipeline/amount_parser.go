package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var amountNumberRegex = regexp.MustCompile(`\d[\d,\.]*`)

// currencyHints maps symbols, codes and spelled-out names to ISO codes,
// checked in order so "US$" wins over "$".
var currencyHints = []struct {
	hint string
	code string
}{
	{"us$", "USD"},
	{"usd", "USD"},
	{"dollar", "USD"},
	{"€", "EUR"},
	{"eur", "EUR"},
	{"euro", "EUR"},
	{"£", "GBP"},
	{"gbp", "GBP"},
	{"pound", "GBP"},
	{"chf", "CHF"},
	{"franc", "CHF"},
	{"$", "USD"},
}

// parseAmountRobust extracts min/max amounts and a currency code from free
// text. Zero means "not found". A single bare amount is treated as both min
// and max unless the text hints at a bound ("up to", "at least").
func parseAmountRobust(text string, defaultCurrency string) (float64, float64, string) {
	if strings.TrimSpace(text) == "" {
		return 0, 0, ""
	}
	textLower := strings.ToLower(text)

	currency := defaultCurrency
	for _, h := range currencyHints {
		if strings.Contains(textLower, h.hint) {
			currency = h.code
			break
		}
	}

	var amounts []float64
	for _, m := range amountNumberRegex.FindAllString(text, -1) {
		if v, ok := parseAmountToken(m); ok && v > 0 {
			amounts = append(amounts, v)
		}
	}
	if len(amounts) == 0 {
		return 0, 0, ""
	}

	if len(amounts) == 1 {
		a := amounts[0]
		switch {
		case strings.Contains(textLower, "up to") || strings.Contains(textLower, "maximum") || strings.Contains(textLower, "max."):
			return 0, a, currency
		case strings.Contains(textLower, "at least") || strings.Contains(textLower, "minimum") || strings.Contains(textLower, "min."):
			return a, 0, currency
		default:
			return a, a, currency
		}
	}

	min, max := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return min, max, currency
}

// parseAmountToken handles both comma-thousands ("1,000,000.50") and
// dot-thousands ("1.000.000") separator conventions.
func parseAmountToken(s string) (float64, bool) {
	clean := strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseFloat(clean, 64); err == nil {
		return v, true
	}
	clean = strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	if v, err := strconv.ParseFloat(clean, 64); err == nil {
		return v, true
	}
	return 0, false
}
