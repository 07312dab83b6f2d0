// Package router implements the smart router: the single entry point
// external callers use to trade foreign for native or native for
// foreign. It deducts the router fee, compares the bonding-curve mint
// quote against the pool quote, and executes the better route.
package router

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/utbc-economy/bigmath"
	"github.com/krazyTry/utbc-economy/display"
	"github.com/krazyTry/utbc-economy/fees"
	"github.com/krazyTry/utbc-economy/shared"
	"github.com/krazyTry/utbc-economy/utbc"
	"github.com/krazyTry/utbc-economy/xyk"
)

// Route identifies which branch serviced a swap.
type Route string

const (
	RouteUTBC Route = "utbc"
	RouteXYK  Route = "xyk"
)

// Router is a stateless dispatcher over the pool, minter, and fee manager.
type Router struct {
	pool   *xyk.Pool
	minter *utbc.Minter
	feeMgr *fees.Manager

	MinSwapForeign    *big.Int
	MinInitialForeign *big.Int
	FeeRouterPPM      *big.Int
}

// New wires a Router to its three collaborators and its own thresholds.
func New(pool *xyk.Pool, minter *utbc.Minter, feeMgr *fees.Manager, minSwapForeign, minInitialForeign, feeRouterPPM *big.Int) (*Router, error) {
	if feeRouterPPM == nil || feeRouterPPM.Sign() < 0 || feeRouterPPM.Cmp(shared.PPM) >= 0 {
		return nil, shared.New(shared.InvalidArgument, "fee_router_ppm must be in [0, PPM)")
	}
	return &Router{
		pool:              pool,
		minter:            minter,
		feeMgr:            feeMgr,
		MinSwapForeign:    new(big.Int).Set(minSwapForeign),
		MinInitialForeign: new(big.Int).Set(minInitialForeign),
		FeeRouterPPM:      new(big.Int).Set(feeRouterPPM),
	}, nil
}

// SwapReport is the outcome of a router-mediated trade.
type SwapReport struct {
	Route       Route
	UserNative  *big.Int
	ForeignIn   *big.Int
	PriceBefore *big.Int
	PriceAfter  *big.Int

	Mint     *utbc.MintReport
	PoolSwap *xyk.SwapReport
}

func (r *SwapReport) String() string {
	return fmt.Sprintf("route=%s out=%s in=%s price=%s->%s",
		r.Route, display.Amount(r.UserNative), display.Amount(r.ForeignIn),
		display.Price(r.PriceBefore), display.Price(r.PriceAfter))
}

// SwapForeignToNative buys native with foreign, routing through whichever
// of UTBC or XYK yields more native to the user.
func (r *Router) SwapForeignToNative(foreignIn, minNativeOut *big.Int) (*SwapReport, error) {
	if foreignIn.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "foreign_in must be positive")
	}
	if foreignIn.Cmp(r.MinSwapForeign) < 0 {
		return nil, shared.New(shared.BelowMinimumThreshold, "foreign_in below min_swap_foreign")
	}
	if !r.pool.HasLiquidity() && foreignIn.Cmp(r.MinInitialForeign) < 0 {
		return nil, shared.New(shared.BelowMinimumThreshold, "initial mint requires min_initial_foreign")
	}

	foreignFee, err := bigmath.MulDiv(foreignIn, r.FeeRouterPPM, shared.PPM)
	if err != nil {
		return nil, err
	}
	foreignNet := new(big.Int).Sub(foreignIn, foreignFee)
	if foreignNet.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "router fee consumes entire input")
	}

	utbcQuote, err := r.minter.GetMintQuote(foreignNet)
	if err != nil {
		return nil, err
	}
	var xykOut *big.Int
	if r.pool.HasLiquidity() {
		xykOut, err = r.pool.GetOutNative(foreignNet)
		if err != nil {
			return nil, err
		}
	} else {
		xykOut = big.NewInt(0)
	}

	utbcViable := utbcQuote != nil && utbcQuote.User.Sign() > 0 && (minNativeOut == nil || utbcQuote.User.Cmp(minNativeOut) >= 0)
	xykViable := xykOut.Sign() > 0 && (minNativeOut == nil || xykOut.Cmp(minNativeOut) >= 0)

	var chooseUTBC bool
	switch {
	case utbcViable && (!xykViable || utbcQuote.User.Cmp(xykOut) >= 0):
		chooseUTBC = true
	case xykViable:
		chooseUTBC = false
	default:
		if xykOut.Sign() > 0 {
			return nil, shared.New(shared.SlippageExceeded, "slippage exceeded")
		}
		return nil, shared.New(shared.NoRoute, "no route available")
	}

	r.feeMgr.ReceiveFeeForeign(foreignFee)

	if chooseUTBC {
		mintRep, err := r.minter.MintNative(foreignNet)
		if err != nil {
			return nil, err
		}
		return &SwapReport{
			Route:       RouteUTBC,
			UserNative:  mintRep.UserNative,
			ForeignIn:   new(big.Int).Set(foreignIn),
			PriceBefore: mintRep.PriceBefore,
			PriceAfter:  mintRep.PriceAfter,
			Mint:        mintRep,
		}, nil
	}

	swapRep, err := r.pool.SwapForeignToNative(foreignNet, minNativeOut)
	if err != nil {
		return nil, err
	}
	return &SwapReport{
		Route:       RouteXYK,
		UserNative:  swapRep.AmountOut,
		ForeignIn:   new(big.Int).Set(foreignIn),
		PriceBefore: swapRep.PriceBefore,
		PriceAfter:  swapRep.PriceAfter,
		PoolSwap:    swapRep,
	}, nil
}

// SwapNativeToForeign sells native into the pool for foreign. The curve
// is unidirectional, so this path always goes through XYK.
func (r *Router) SwapNativeToForeign(nativeIn, minForeignOut *big.Int) (*SwapReport, error) {
	if nativeIn.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "native_in must be positive")
	}
	if !r.pool.HasLiquidity() {
		return nil, shared.New(shared.InsufficientLiquidity, "pool not initialised")
	}

	nativeFee, err := bigmath.MulDiv(nativeIn, r.FeeRouterPPM, shared.PPM)
	if err != nil {
		return nil, err
	}
	nativeNet := new(big.Int).Sub(nativeIn, nativeFee)

	priceSpot, err := r.pool.GetPrice()
	if err != nil {
		return nil, err
	}
	if priceSpot.Sign() == 0 {
		return nil, shared.New(shared.InsufficientLiquidity, "spot price is zero")
	}

	nativeNetAsForeign, err := bigmath.MulDiv(nativeNet, priceSpot, shared.Precision)
	if err != nil {
		return nil, err
	}
	if nativeNetAsForeign.Cmp(r.MinSwapForeign) < 0 {
		return nil, shared.New(shared.BelowMinimumThreshold, "native sale below min_swap_foreign equivalent")
	}

	r.feeMgr.ReceiveFeeNative(nativeFee)

	swapRep, err := r.pool.SwapNativeToForeign(nativeNet, minForeignOut)
	if err != nil {
		return nil, err
	}
	return &SwapReport{
		Route:       RouteXYK,
		UserNative:  swapRep.AmountOut,
		ForeignIn:   big.NewInt(0),
		PriceBefore: swapRep.PriceBefore,
		PriceAfter:  swapRep.PriceAfter,
		PoolSwap:    swapRep,
	}, nil
}
