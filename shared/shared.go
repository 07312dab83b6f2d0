// Package shared holds the constants, configuration, and error
// taxonomy every other package in the token economy depends on.
package shared

import "math/big"

// Precision and fraction scales.
var (
	Precision = big.NewInt(1_000_000_000_000) // 10^12
	PPM       = big.NewInt(1_000_000)         // 10^6
)

// ShareConfig splits a newly minted quantity among four recipients.
// The four fractions must sum to PPM exactly.
type ShareConfig struct {
	UserPPM     *big.Int
	PolPPM      *big.Int
	TreasuryPPM *big.Int
	TeamPPM     *big.Int
}

// SumsToPPM reports whether the four shares add up to PPM exactly.
func (s ShareConfig) SumsToPPM() bool {
	sum := new(big.Int).Add(s.UserPPM, s.PolPPM)
	sum.Add(sum, s.TreasuryPPM)
	sum.Add(sum, s.TeamPPM)
	return sum.Cmp(PPM) == 0
}

// SystemConfig is the immutable set of parameters a System is built from.
type SystemConfig struct {
	PriceInitial      *big.Int
	SlopePPM          *big.Int
	FeeXykPPM         *big.Int
	FeeRouterPPM      *big.Int
	MinSwapForeign    *big.Int
	MinInitialForeign *big.Int
	Shares            ShareConfig
}

// DefaultConfig returns the system's default parameter table.
func DefaultConfig() SystemConfig {
	return SystemConfig{
		PriceInitial:      new(big.Int).Div(Precision, big.NewInt(1000)),
		SlopePPM:          new(big.Int).Div(PPM, big.NewInt(1000)),
		FeeXykPPM:         big.NewInt(3000),
		FeeRouterPPM:      big.NewInt(2000),
		MinSwapForeign:    new(big.Int).Div(Precision, big.NewInt(100)),
		MinInitialForeign: new(big.Int).Mul(big.NewInt(100), Precision),
		Shares: ShareConfig{
			UserPPM:     big.NewInt(333_333),
			PolPPM:      big.NewInt(333_333),
			TreasuryPPM: big.NewInt(222_222),
			TeamPPM:     big.NewInt(111_112),
		},
	}
}

// Validate checks the invariants construction must enforce.
func (c SystemConfig) Validate() error {
	if c.PriceInitial == nil || c.PriceInitial.Sign() <= 0 {
		return New(InvalidArgument, "price_initial must be positive")
	}
	if c.SlopePPM == nil || c.SlopePPM.Sign() < 0 {
		return New(InvalidArgument, "slope_ppm must be non-negative")
	}
	if c.FeeXykPPM == nil || c.FeeXykPPM.Sign() < 0 || c.FeeXykPPM.Cmp(PPM) >= 0 {
		return New(InvalidArgument, "fee_xyk_ppm must be in [0, PPM)")
	}
	if c.FeeRouterPPM == nil || c.FeeRouterPPM.Sign() < 0 || c.FeeRouterPPM.Cmp(PPM) >= 0 {
		return New(InvalidArgument, "fee_router_ppm must be in [0, PPM)")
	}
	if c.MinSwapForeign == nil || c.MinSwapForeign.Sign() < 0 {
		return New(InvalidArgument, "min_swap_foreign must be non-negative")
	}
	if c.MinInitialForeign == nil || c.MinInitialForeign.Sign() < 0 {
		return New(InvalidArgument, "min_initial_foreign must be non-negative")
	}
	if !c.Shares.SumsToPPM() {
		return New(InvalidArgument, "shares must sum to PPM")
	}
	return nil
}
