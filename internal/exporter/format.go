package exporter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders a monetary value with exactly two decimal places
// and a decimal comma, e.g. 759558.40 → "759558,40".
func formatMoney(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// formatInt formats an integer for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
