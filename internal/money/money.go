package money

import (
	"math"
	"strconv"
	"strings"
)

// pow10 for the supported precisions (0 and 2).
func pow10(n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// Format renders amount as a locale-correct display string for the currency,
// always with exactly the currency's number of fractional digits. A NaN or
// infinite amount is displayed as zero; Format never fails.
func Format(amount float64, c Currency) string {
	cfg := c.Config()

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	negative := amount < 0
	scale := pow10(cfg.Decimals)
	minor := int64(math.Round(math.Abs(amount) * scale))

	digits := strconv.FormatInt(minor, 10)
	// Ensure enough digits to split off the fraction.
	for len(digits) < cfg.Decimals+1 {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-cfg.Decimals]
	fracPart := digits[len(digits)-cfg.Decimals:]

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	if !cfg.symbolSuffix {
		b.WriteString(cfg.Symbol)
	}
	b.WriteString(groupDigits(intPart, cfg.groupSep, cfg.grouping))
	if cfg.Decimals > 0 {
		b.WriteString(cfg.decimalSep)
		b.WriteString(fracPart)
	}
	if cfg.symbolSuffix {
		b.WriteString(" ") // non-breaking space, as the locale renders it
		b.WriteString(cfg.Symbol)
	}
	return b.String()
}

// groupDigits inserts the group separator into an integer digit string.
// Western grouping separates every three digits; Indian grouping separates
// the last three digits, then every two (12,34,567).
func groupDigits(digits, sep string, scheme grouping) string {
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	rest := digits
	// Rightmost group is always three digits.
	groups = append(groups, rest[len(rest)-3:])
	rest = rest[:len(rest)-3]

	width := 3
	if scheme == groupIndian {
		width = 2
	}
	for len(rest) > width {
		groups = append(groups, rest[len(rest)-width:])
		rest = rest[:len(rest)-width]
	}
	if len(rest) > 0 {
		groups = append(groups, rest)
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		if i > 0 {
			b.WriteString(sep)
		}
	}
	return b.String()
}

// ParseInput converts free-form user input into an amount. All non-digit
// characters are stripped and the remaining digit string is read as the
// currency's minor unit ("1234" is 12.34 for two-decimal currencies, 1234
// for JPY). The result is never NaN; unusable input yields 0.
func ParseInput(raw string, c Currency) float64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	minor, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(minor) / pow10(c.Config().Decimals)
}

// Truncate drops fractional precision beyond what the currency carries,
// without rounding. Used when the draft's currency changes: the underlying
// numeric value is kept except that digits the new currency cannot represent
// are cut off (12.34 becomes 12 when switching to JPY).
func Truncate(amount float64, c Currency) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	scale := pow10(c.Config().Decimals)
	return math.Trunc(amount*scale) / scale
}
