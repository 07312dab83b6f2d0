// Package xyk implements the constant-product automated market-maker
// pool: native/foreign reserves, LP accounting, and the fee-adjusted
// swap rule.
package xyk

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/utbc-economy/bigmath"
	"github.com/krazyTry/utbc-economy/display"
	"github.com/krazyTry/utbc-economy/shared"
)

// Pool holds the live constant-product reserves and LP supply.
type Pool struct {
	FeePPM         *big.Int
	ReserveNative  *big.Int
	ReserveForeign *big.Int
	SupplyLP       *big.Int
}

// NewPool constructs an empty pool with the given proportional fee.
func NewPool(feePPM *big.Int) (*Pool, error) {
	if feePPM == nil || feePPM.Sign() < 0 || feePPM.Cmp(shared.PPM) >= 0 {
		return nil, shared.New(shared.InvalidArgument, "fee_ppm must be in [0, PPM)")
	}
	return &Pool{
		FeePPM:         new(big.Int).Set(feePPM),
		ReserveNative:  big.NewInt(0),
		ReserveForeign: big.NewInt(0),
		SupplyLP:       big.NewInt(0),
	}, nil
}

// HasLiquidity reports whether both reserves are strictly positive.
func (p *Pool) HasLiquidity() bool {
	return p.ReserveNative.Sign() > 0 && p.ReserveForeign.Sign() > 0
}

// GetPrice returns the foreign-per-native spot price, PRECISION-scaled.
// Requires a live pool.
func (p *Pool) GetPrice() (*big.Int, error) {
	if !p.HasLiquidity() {
		return nil, shared.New(shared.InsufficientLiquidity, "pool is not live")
	}
	return bigmath.MulDiv(p.ReserveForeign, shared.Precision, p.ReserveNative)
}

func (p *Pool) outAmount(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn.Sign() <= 0 || !p.HasLiquidity() {
		return big.NewInt(0), nil
	}
	inAfterFee := new(big.Int).Sub(shared.PPM, p.FeePPM)
	inAfterFee.Mul(inAfterFee, amountIn)

	num := new(big.Int).Mul(inAfterFee, reserveOut)
	denom := new(big.Int).Mul(reserveIn, shared.PPM)
	denom.Add(denom, inAfterFee)

	return num.Div(num, denom), nil
}

// GetOutForeign quotes the foreign output of a native-in swap.
func (p *Pool) GetOutForeign(nativeIn *big.Int) (*big.Int, error) {
	return p.outAmount(nativeIn, p.ReserveNative, p.ReserveForeign)
}

// GetOutNative quotes the native output of a foreign-in swap.
func (p *Pool) GetOutNative(foreignIn *big.Int) (*big.Int, error) {
	return p.outAmount(foreignIn, p.ReserveForeign, p.ReserveNative)
}

// LiquidityReport describes the result of AddLiquidity.
type LiquidityReport struct {
	LPMinted    *big.Int
	NativeUsed  *big.Int
	ForeignUsed *big.Int
	NativeRest  *big.Int
	ForeignRest *big.Int
}

func (r *LiquidityReport) String() string {
	return fmt.Sprintf("add_liquidity: lp=%s native=%s foreign=%s native_rest=%s foreign_rest=%s",
		display.Amount(r.LPMinted), display.Amount(r.NativeUsed), display.Amount(r.ForeignUsed),
		display.Amount(r.NativeRest), display.Amount(r.ForeignRest))
}

// AddLiquidity deposits native/foreign into the pool, bootstrapping it
// from empty or topping it up while live.
func (p *Pool) AddLiquidity(nativeIn, foreignIn *big.Int) (*LiquidityReport, error) {
	if nativeIn.Sign() <= 0 || foreignIn.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "add_liquidity inputs must be positive")
	}

	if !p.HasLiquidity() {
		prod := new(big.Int).Mul(nativeIn, foreignIn)
		lpMinted, err := bigmath.Isqrt(prod)
		if err != nil {
			return nil, err
		}
		if lpMinted.Sign() == 0 {
			return nil, shared.New(shared.InsufficientLiquidity, "bootstrap product too small to mint LP")
		}
		p.ReserveNative = new(big.Int).Set(nativeIn)
		p.ReserveForeign = new(big.Int).Set(foreignIn)
		p.SupplyLP = lpMinted
		return &LiquidityReport{
			LPMinted:    lpMinted,
			NativeUsed:  new(big.Int).Set(nativeIn),
			ForeignUsed: new(big.Int).Set(foreignIn),
			NativeRest:  big.NewInt(0),
			ForeignRest: big.NewInt(0),
		}, nil
	}

	lpFromN, err := bigmath.MulDiv(nativeIn, p.SupplyLP, p.ReserveNative)
	if err != nil {
		return nil, err
	}
	lpFromF, err := bigmath.MulDiv(foreignIn, p.SupplyLP, p.ReserveForeign)
	if err != nil {
		return nil, err
	}
	lpMinted := bigmath.Min(lpFromN, lpFromF)
	if lpMinted.Sign() == 0 {
		return nil, shared.New(shared.InsufficientLiquidity, "top-up too small to mint LP")
	}

	nativeUsed, err := bigmath.MulDiv(p.ReserveNative, lpMinted, p.SupplyLP)
	if err != nil {
		return nil, err
	}
	foreignUsed, err := bigmath.MulDiv(p.ReserveForeign, lpMinted, p.SupplyLP)
	if err != nil {
		return nil, err
	}

	p.ReserveNative.Add(p.ReserveNative, nativeUsed)
	p.ReserveForeign.Add(p.ReserveForeign, foreignUsed)
	p.SupplyLP.Add(p.SupplyLP, lpMinted)

	return &LiquidityReport{
		LPMinted:    lpMinted,
		NativeUsed:  nativeUsed,
		ForeignUsed: foreignUsed,
		NativeRest:  new(big.Int).Sub(nativeIn, nativeUsed),
		ForeignRest: new(big.Int).Sub(foreignIn, foreignUsed),
	}, nil
}

// SwapReport describes the result of a swap.
type SwapReport struct {
	AmountIn       *big.Int
	AmountOut      *big.Int
	PriceBefore    *big.Int
	PriceAfter     *big.Int
	PriceImpactPPM *big.Int
}

func (r *SwapReport) String() string {
	return fmt.Sprintf("swap: in=%s out=%s price=%s->%s impact=%s",
		display.Amount(r.AmountIn), display.Amount(r.AmountOut),
		display.Price(r.PriceBefore), display.Price(r.PriceAfter), display.PPMFraction(r.PriceImpactPPM))
}

func (p *Pool) priceImpact(before, after *big.Int) *big.Int {
	if before.Sign() == 0 {
		return big.NewInt(0)
	}
	diff := new(big.Int).Sub(after, before)
	diff.Abs(diff)
	impact, _ := bigmath.MulDiv(diff, shared.PPM, before)
	return impact
}

// SwapNativeToForeign swaps native into foreign, enforcing minForeignOut.
func (p *Pool) SwapNativeToForeign(nativeIn, minForeignOut *big.Int) (*SwapReport, error) {
	if nativeIn.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "native_in must be positive")
	}
	if !p.HasLiquidity() {
		return nil, shared.New(shared.InsufficientLiquidity, "pool is not live")
	}
	priceBefore, err := p.GetPrice()
	if err != nil {
		return nil, err
	}
	out, err := p.GetOutForeign(nativeIn)
	if err != nil {
		return nil, err
	}
	if minForeignOut != nil && out.Cmp(minForeignOut) < 0 {
		return nil, shared.New(shared.SlippageExceeded, "foreign output below minimum")
	}
	if out.Cmp(p.ReserveForeign) >= 0 {
		return nil, shared.New(shared.InsufficientLiquidity, "insufficient foreign reserve")
	}

	p.ReserveNative.Add(p.ReserveNative, nativeIn)
	p.ReserveForeign.Sub(p.ReserveForeign, out)

	priceAfter, err := p.GetPrice()
	if err != nil {
		return nil, err
	}
	return &SwapReport{
		AmountIn:       new(big.Int).Set(nativeIn),
		AmountOut:      out,
		PriceBefore:    priceBefore,
		PriceAfter:     priceAfter,
		PriceImpactPPM: p.priceImpact(priceBefore, priceAfter),
	}, nil
}

// SwapForeignToNative swaps foreign into native, enforcing minNativeOut.
func (p *Pool) SwapForeignToNative(foreignIn, minNativeOut *big.Int) (*SwapReport, error) {
	if foreignIn.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "foreign_in must be positive")
	}
	if !p.HasLiquidity() {
		return nil, shared.New(shared.InsufficientLiquidity, "pool is not live")
	}
	priceBefore, err := p.GetPrice()
	if err != nil {
		return nil, err
	}
	out, err := p.GetOutNative(foreignIn)
	if err != nil {
		return nil, err
	}
	if minNativeOut != nil && out.Cmp(minNativeOut) < 0 {
		return nil, shared.New(shared.SlippageExceeded, "native output below minimum")
	}
	if out.Cmp(p.ReserveNative) >= 0 {
		return nil, shared.New(shared.InsufficientLiquidity, "insufficient native reserve")
	}

	p.ReserveForeign.Add(p.ReserveForeign, foreignIn)
	p.ReserveNative.Sub(p.ReserveNative, out)

	priceAfter, err := p.GetPrice()
	if err != nil {
		return nil, err
	}
	return &SwapReport{
		AmountIn:       new(big.Int).Set(foreignIn),
		AmountOut:      out,
		PriceBefore:    priceBefore,
		PriceAfter:     priceAfter,
		PriceImpactPPM: p.priceImpact(priceBefore, priceAfter),
	}, nil
}
