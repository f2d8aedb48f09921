// Conversion engine for the exchange calculator. Every conversion is routed
// through the USD unit price of both currencies rather than a pairwise rate
// table, so a quote is exact only to the precision of the two independently
// reported prices.
package convert

import (
	"math"
	"strconv"
	"strings"

	"truenorth/src/model"
)

// Convert computes how much of "to" the given amount of "from" buys.
// Absent, non-numeric or non-positive input yields 0, as does a currency
// with a non-positive quoted price.
func Convert(from, to model.Currency, amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0
	}
	if from.Price <= 0 || to.Price <= 0 {
		return 0
	}

	usdValue := amount * from.Price

	return usdValue / to.Price
}

// ConvertString is Convert over a user-entered amount string. Unparseable
// input yields 0.
func ConvertString(from, to model.Currency, amount string) float64 {
	value, err := ParseAmount(amount)
	if err != nil {
		return 0
	}
	return Convert(from, to, value)
}

// ParseAmount parses an amount string as the user sees it. Derived amounts
// are rendered with grouped thousands, and those strings round-trip back
// through the calculator, so the separators must parse.
func ParseAmount(amount string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// FormatPrice renders a unit price with precision chosen by magnitude:
// >=1000 grouped with 2 decimals, >=1 with 4, >=0.01 with 6, else 8.
func FormatPrice(price float64) string {
	switch {
	case price >= 1000:
		return groupThousands(strconv.FormatFloat(price, 'f', 2, 64))
	case price >= 1:
		return strconv.FormatFloat(price, 'f', 4, 64)
	case price >= 0.01:
		return strconv.FormatFloat(price, 'f', 6, 64)
	default:
		return strconv.FormatFloat(price, 'f', 8, 64)
	}
}

// FormatAmount renders a converted amount. Values >=1000 use grouped
// thousands with between 2 and 8 fraction digits (trailing zeros trimmed
// down to 2); smaller values keep the full 8 fraction digits.
func FormatAmount(amount float64) string {
	if amount >= 1000 {
		fixed := trimFraction(strconv.FormatFloat(amount, 'f', 8, 64), 2)
		return groupThousands(fixed)
	}
	return strconv.FormatFloat(amount, 'f', 8, 64)
}

// trimFraction removes trailing fraction zeros but never below min digits.
func trimFraction(s string, min int) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	frac := s[dot+1:]
	end := len(frac)
	for end > min && frac[end-1] == '0' {
		end--
	}
	return s[:dot+1] + frac[:end]
}

// groupThousands inserts comma separators into the integer part of an
// already fixed-point formatted number.
func groupThousands(s string) string {
	intPart, fracPart := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + fracPart
}
