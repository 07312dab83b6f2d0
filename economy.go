// Package economy wires the five stateful components of the token
// economy (XykPool, PolManager, UtbcMinter, FeeManager, SmartRouter)
// into one constructed System, handed back ready to use from a single
// constructor call.
package economy

import (
	"math/big"

	"github.com/krazyTry/utbc-economy/fees"
	"github.com/krazyTry/utbc-economy/pol"
	"github.com/krazyTry/utbc-economy/router"
	"github.com/krazyTry/utbc-economy/shared"
	"github.com/krazyTry/utbc-economy/utbc"
	"github.com/krazyTry/utbc-economy/xyk"
)

// System holds handles to all five wired components. Construction order
// is strictly acyclic: Pool -> PolManager(Pool) -> Minter(PolManager) ->
// FeeManager(Pool, Minter) -> Router(Pool, Minter, FeeManager).
type System struct {
	Pool   *xyk.Pool
	PolMgr *pol.Manager
	Minter *utbc.Minter
	FeeMgr *fees.Manager
	Router *router.Router
	Config shared.SystemConfig
}

// New constructs a System from cfg, after validating its invariants:
// share sum = PPM, fees < PPM, price_initial > 0.
func New(cfg shared.SystemConfig) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := xyk.NewPool(cfg.FeeXykPPM)
	if err != nil {
		return nil, err
	}

	polMgr := pol.NewManager(pool)

	minter, err := utbc.NewMinter(cfg.PriceInitial, cfg.SlopePPM, cfg.Shares, polMgr)
	if err != nil {
		return nil, err
	}

	feeMgr := fees.NewManager(pool, minter, cfg.MinSwapForeign)

	r, err := router.New(pool, minter, feeMgr, cfg.MinSwapForeign, cfg.MinInitialForeign, cfg.FeeRouterPPM)
	if err != nil {
		return nil, err
	}

	return &System{
		Pool:   pool,
		PolMgr: polMgr,
		Minter: minter,
		FeeMgr: feeMgr,
		Router: r,
		Config: cfg,
	}, nil
}

// NewDefault constructs a System from the default configuration table.
func NewDefault() (*System, error) {
	return New(shared.DefaultConfig())
}

// ScaleForeign multiplies n by PRECISION, a convenience for expressing
// test and example amounts in units of whole tokens.
func ScaleForeign(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), shared.Precision)
}
