package view

import (
	"fmt"
	"strings"
)

// FormatAmount renders an amount in minor units, e.g. 1050 "eur" -> "€10.50".
func FormatAmount[T ~int64](minor T, currency string) string {
	amount := int64(minor)
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	sym, prefix := currencySymbol(strings.ToUpper(currency))
	if prefix {
		return fmt.Sprintf("%s%s%d.%02d", sign, sym, amount/100, amount%100)
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, sym)
}

func currencySymbol(code string) (string, bool) {
	switch code {
	case "EUR":
		return "€", true
	case "USD":
		return "$", true
	case "GBP":
		return "£", true
	case "JPY":
		return "¥", true
	case "TRY":
		return "₺", true
	case "":
		return "", true
	default:
		return code, false
	}
}
