// Package display renders PRECISION-scaled integer amounts as
// human-readable decimals. It is purely a presentation concern: nothing
// here is consulted by any calculation.
package display

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/utbc-economy/shared"
)

// Amount renders a PRECISION-scaled raw integer as a human decimal string,
// e.g. Amount(1_500_000_000_000) -> "1.5" at PRECISION = 10^12.
func Amount(raw *big.Int) string {
	if raw == nil {
		return "0"
	}
	d := decimal.NewFromBigInt(raw, 0)
	scale := decimal.NewFromBigInt(shared.Precision, 0)
	return d.DivRound(scale, 18).String()
}

// PPMFraction renders a PPM-scaled fraction as a percentage string,
// e.g. PPMFraction(333_333) -> "33.3333%".
func PPMFraction(raw *big.Int) string {
	if raw == nil {
		return "0%"
	}
	d := decimal.NewFromBigInt(raw, 0)
	pct := d.Mul(decimal.NewFromInt(100)).DivRound(decimal.NewFromBigInt(shared.PPM, 0), 6)
	return pct.String() + "%"
}

// Price renders a foreign-per-native spot price (PRECISION-scaled) as a
// plain decimal string.
func Price(raw *big.Int) string {
	return Amount(raw)
}
