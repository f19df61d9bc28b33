// Package money centralizes amount parsing and formatting.
// Source amounts are free-form display strings ("約 500", "250-700"); every
// numeric need in the system goes through ParseLoose so there is exactly one
// interpretation of a given string.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed affixes on computed totals
const finalTotalPrefix = "約 "
const finalTotalSuffix = " TWD"

// ParseLoose extracts a best-effort decimal from a display string.
// All characters except digits and decimal points are stripped; anything
// after a second decimal point is ignored. Unparsable input yields zero.
func ParseLoose(s string) decimal.Decimal {
	var b strings.Builder
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			dots++
			if dots == 1 {
				b.WriteRune(r)
			} else {
				// "1.2.3" parses as 1.2
				return parseOrZero(b.String())
			}
		}
	}
	return parseOrZero(b.String())
}

func parseOrZero(s string) decimal.Decimal {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FinalTotal computes the derived budget total from the three manual summary
// fields: round(twd + thb*rate) with thousands separators and the fixed
// currency affixes. A missing or zero rate means "rate unknown", so the
// result is empty rather than a misleading partial total.
func FinalTotal(twdTotal, thbTotal, exchangeRate string) string {
	rate := ParseLoose(exchangeRate)
	if rate.IsZero() {
		return ""
	}
	total := ParseLoose(twdTotal).Add(ParseLoose(thbTotal).Mul(rate)).Round(0)
	return finalTotalPrefix + GroupThousands(total.String()) + finalTotalSuffix
}

// FormatDisplay strips non-numeric decoration from an amount string and
// re-adds thousands separators. Strings with no digits pass through
// unchanged ("free", "TBD").
func FormatDisplay(s string) string {
	d := ParseLoose(s)
	if d.IsZero() && !strings.ContainsAny(s, "0123456789") {
		return s
	}
	return GroupThousands(d.String())
}

// GroupThousands inserts comma separators into the integer part of a
// plain decimal string
func GroupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	if n > 3 {
		var b strings.Builder
		first := n % 3
		if first > 0 {
			b.WriteString(intPart[:first])
		}
		for i := first; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
