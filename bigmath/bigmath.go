// Package bigmath provides exact, unbounded integer arithmetic for the
// monetary paths of the token economy. Every operation widens through
// math/big rather than any fixed-width type, matching the reference
// behaviour of floor/ceil division and exact integer square roots.
package bigmath

import (
	"errors"
	"math/big"
)

var (
	ErrDivisionByZero = errors.New("bigmath: division by zero")
	ErrNegativeSqrt   = errors.New("bigmath: isqrt of negative number")
)

// MulDiv returns floor(a*b/c). c must be non-zero.
func MulDiv(a, b, c *big.Int) (*big.Int, error) {
	if c.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(a, b)
	return prod.Div(prod, c), nil
}

// DivCeil returns ceil(a/b). b must be non-zero.
func DivCeil(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() == 0 {
		return q, nil
	}
	// a, b are non-negative on every monetary path; ceil means "round away
	// from zero towards positive infinity" for that domain.
	return q.Add(q, big.NewInt(1)), nil
}

// Isqrt returns floor(sqrt(n)) via Newton iteration, exact for n >= 0.
func Isqrt(n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, ErrNegativeSqrt
	}
	if n.Sign() == 0 {
		return big.NewInt(0), nil
	}
	two := big.NewInt(2)
	one := big.NewInt(1)

	x := new(big.Int).Set(n)
	y := new(big.Int).Add(x, one)
	y.Div(y, two)

	for y.Cmp(x) < 0 {
		x.Set(y)
		y.Add(x, new(big.Int).Div(n, x))
		y.Div(y, two)
	}
	return x, nil
}

// Abs returns |n| as a fresh value.
func Abs(n *big.Int) *big.Int {
	return new(big.Int).Abs(n)
}

// Min returns the smaller of a, b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a, b.
func Max(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
