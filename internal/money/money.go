// Package money provides currency-aware rounding for computed prices.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnknownStrategy is returned when a rounding strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown_rounding_strategy")

// Strategy names a price rounding behavior.
type Strategy string

const (
	// StrategyNone rounds to the currency's minor unit only.
	StrategyNone Strategy = "none"
	// StrategyWhole rounds to the nearest whole major unit.
	StrategyWhole Strategy = "whole"
	// StrategyNearest099 rounds to the nearest price ending in .99.
	// Ties round up. Zero-decimal currencies degrade to whole-unit rounding.
	StrategyNearest099 Strategy = "nearest_0_99"
	// StrategyNearest095 rounds to the nearest price ending in .95.
	StrategyNearest095 Strategy = "nearest_0_95"
)

// zeroDecimal lists ISO 4217 currencies without a minor unit.
var zeroDecimal = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {},
	"KRW": {}, "MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// threeDecimal lists currencies with a thousandth minor unit.
var threeDecimal = map[string]struct{}{
	"BHD": {}, "IQD": {}, "JOD": {}, "KWD": {}, "LYD": {}, "OMR": {}, "TND": {},
}

// MinorUnits returns the number of decimal places valid for a currency.
func MinorUnits(currency string) int32 {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := zeroDecimal[code]; ok {
		return 0
	}
	if _, ok := threeDecimal[code]; ok {
		return 3
	}
	return 2
}

// RoundToMinor rounds a raw price to the currency's minor unit, half up.
func RoundToMinor(price float64, currency string) float64 {
	return decimal.NewFromFloat(price).Round(MinorUnits(currency)).InexactFloat64()
}

// ParseStrategy validates a strategy name. Unknown names fail loudly so a
// misconfigured caller never silently skips rounding.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case StrategyNone:
		return StrategyNone, nil
	case StrategyWhole:
		return StrategyWhole, nil
	case StrategyNearest099:
		return StrategyNearest099, nil
	case StrategyNearest095:
		return StrategyNearest095, nil
	default:
		return "", ErrUnknownStrategy
	}
}

// Apply rounds price according to the strategy and currency. Applying a
// strategy to its own output returns the same value.
func Apply(s Strategy, price float64, currency string) (float64, error) {
	if price < 0 {
		price = 0
	}
	switch s {
	case StrategyNone:
		return RoundToMinor(price, currency), nil
	case StrategyWhole:
		return decimal.NewFromFloat(price).Round(0).InexactFloat64(), nil
	case StrategyNearest099:
		return charm(price, currency, "0.99"), nil
	case StrategyNearest095:
		return charm(price, currency, "0.95"), nil
	default:
		return 0, ErrUnknownStrategy
	}
}

// charm rounds to the nearest value whose fractional part equals ending.
// A zero price is returned unchanged; positive prices below one major unit
// round to the lowest positive charm value.
func charm(price float64, currency string, ending string) float64 {
	if MinorUnits(currency) == 0 {
		return decimal.NewFromFloat(price).Round(0).InexactFloat64()
	}
	d := decimal.NewFromFloat(price)
	if d.IsZero() {
		return 0
	}
	e := decimal.RequireFromString(ending)
	k := d.Sub(e).Round(0)
	if k.IsNegative() {
		k = decimal.Zero
	}
	return k.Add(e).InexactFloat64()
}
