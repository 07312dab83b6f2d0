package utbc

import (
	"math/big"

	"github.com/krazyTry/utbc-economy/bigmath"
	"github.com/krazyTry/utbc-economy/shared"
)

// spotPrice returns price_initial + slope_ppm*supply/PPM, floored.
func spotPrice(priceInitial, slopePPM, supply *big.Int) (*big.Int, error) {
	term, err := bigmath.MulDiv(slopePPM, supply, shared.PPM)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(priceInitial, term), nil
}

// solveMint returns the largest delta such that the integral of the price
// curve from supply to supply+delta does not exceed foreignIn, scaled at
// PRECISION. Returns zero when no positive delta satisfies the budget.
//
// Linear case (slope_ppm = 0): delta = mul_div(f, PRECISION, price_initial).
//
// Otherwise it solves a*delta^2 + b*delta + c = 0 for the positive root
// over exact integers: discriminant as a big.Int, Isqrt for the root.
func solveMint(priceInitial, slopePPM, supply, foreignIn *big.Int) (*big.Int, error) {
	if foreignIn.Sign() <= 0 {
		return big.NewInt(0), nil
	}

	if slopePPM.Sign() == 0 {
		delta, err := bigmath.MulDiv(foreignIn, shared.Precision, priceInitial)
		if err != nil {
			return nil, err
		}
		if delta.Sign() <= 0 {
			return big.NewInt(0), nil
		}
		return delta, nil
	}

	a := new(big.Int).Set(slopePPM)

	b := new(big.Int).Mul(priceInitial, shared.PPM)
	slopeSupply := new(big.Int).Mul(slopePPM, supply)
	b.Add(b, slopeSupply)
	b.Mul(b, big.NewInt(2))

	c := new(big.Int).Mul(foreignIn, shared.PPM)
	c.Mul(c, shared.Precision)
	c.Mul(c, big.NewInt(2))
	c.Neg(c)

	// disc = b^2 - 4ac
	disc := new(big.Int).Mul(b, b)
	fourAC := new(big.Int).Mul(a, c)
	fourAC.Mul(fourAC, big.NewInt(4))
	disc.Sub(disc, fourAC)

	if disc.Sign() < 0 {
		return big.NewInt(0), nil
	}

	root, err := bigmath.Isqrt(disc)
	if err != nil {
		return nil, err
	}
	if root.Cmp(b) <= 0 {
		return big.NewInt(0), nil
	}

	delta := new(big.Int).Sub(root, b)
	twoA := new(big.Int).Mul(a, big.NewInt(2))
	delta.Div(delta, twoA)
	return delta, nil
}
