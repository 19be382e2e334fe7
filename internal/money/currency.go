// Package money implements the currency handling used by the budget wizard:
// a closed set of supported currencies, locale-correct display formatting,
// and keystroke-tolerant input parsing.
package money

import (
	"fmt"
	"strings"
)

// Currency is one of the supported ISO 4217 currency codes. The set is
// closed: values are produced only by the package constants and Parse.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	INR Currency = "INR"
)

// grouping selects the digit-grouping scheme for a locale.
type grouping int

const (
	groupWestern grouping = iota // 1,234,567
	groupIndian                  // 12,34,567
)

// Config describes how a currency is displayed and entered.
type Config struct {
	Locale   string
	Symbol   string
	Decimals int

	groupSep     string
	decimalSep   string
	grouping     grouping
	symbolSuffix bool // symbol rendered after the amount (e.g. de-DE EUR)
}

// Config returns the display configuration for the currency. The switch is
// exhaustive over the supported set; an unknown value is a programming error.
func (c Currency) Config() Config {
	switch c {
	case USD:
		return Config{Locale: "en-US", Symbol: "$", Decimals: 2, groupSep: ",", decimalSep: ".", grouping: groupWestern}
	case EUR:
		return Config{Locale: "de-DE", Symbol: "€", Decimals: 2, groupSep: ".", decimalSep: ",", grouping: groupWestern, symbolSuffix: true}
	case GBP:
		return Config{Locale: "en-GB", Symbol: "£", Decimals: 2, groupSep: ",", decimalSep: ".", grouping: groupWestern}
	case JPY:
		return Config{Locale: "ja-JP", Symbol: "¥", Decimals: 0, groupSep: ",", decimalSep: ".", grouping: groupWestern}
	case INR:
		return Config{Locale: "en-IN", Symbol: "₹", Decimals: 2, groupSep: ",", decimalSep: ".", grouping: groupIndian}
	}
	panic(fmt.Sprintf("money: unsupported currency %q", string(c)))
}

// Decimals returns the number of fractional digits the currency carries.
func (c Currency) Decimals() int { return c.Config().Decimals }

// Symbol returns the currency's display symbol.
func (c Currency) Symbol() string { return c.Config().Symbol }

// All returns the supported currencies in display order.
func All() []Currency {
	return []Currency{USD, EUR, GBP, JPY, INR}
}

// Valid reports whether code names a supported currency.
func Valid(code string) bool {
	_, err := Parse(code)
	return err == nil
}

// Parse converts a currency code (case-insensitive) into a Currency.
func Parse(code string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(code))) {
	case USD:
		return USD, nil
	case EUR:
		return EUR, nil
	case GBP:
		return GBP, nil
	case JPY:
		return JPY, nil
	case INR:
		return INR, nil
	}
	return "", fmt.Errorf("money: unsupported currency %q", code)
}
