// Package pol implements the protocol-owned-liquidity accumulator: it
// turns (native, foreign) contributions from the minter into LP positions
// against the shared pool via a balanced top-up followed by a residual
// swap. It never surfaces a failure to its caller; anything it cannot
// use immediately is parked in its buffers.
package pol

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/utbc-economy/bigmath"
	"github.com/krazyTry/utbc-economy/display"
	"github.com/krazyTry/utbc-economy/xyk"
)

// Manager accumulates permanent LP on behalf of the protocol.
type Manager struct {
	pool *xyk.Pool

	BalanceLP          *big.Int
	ContributedNative  *big.Int
	ContributedForeign *big.Int
	BufferNative       *big.Int
	BufferForeign      *big.Int
}

// NewManager wires a Manager to the shared pool.
func NewManager(pool *xyk.Pool) *Manager {
	return &Manager{
		pool:               pool,
		BalanceLP:          big.NewInt(0),
		ContributedNative:  big.NewInt(0),
		ContributedForeign: big.NewInt(0),
		BufferNative:       big.NewInt(0),
		BufferForeign:      big.NewInt(0),
	}
}

// Report describes what a single AddLiquidity call accomplished.
type Report struct {
	LPMinted    *big.Int
	NativeUsed  *big.Int
	ForeignUsed *big.Int
	Success     bool
}

func (r Report) String() string {
	return fmt.Sprintf("pol: lp=%s native=%s foreign=%s success=%v",
		display.Amount(r.LPMinted), display.Amount(r.NativeUsed), display.Amount(r.ForeignUsed), r.Success)
}

// AddLiquidity receives a (native, foreign) contribution and folds it
// into the pool's LP, combining it with whatever is left over from
// previous calls. It is infallible from the caller's point of view.
func (m *Manager) AddLiquidity(native, foreign *big.Int) Report {
	n := new(big.Int).Add(m.BufferNative, native)
	f := new(big.Int).Add(m.BufferForeign, foreign)

	if !m.pool.HasLiquidity() {
		return m.bootstrap(n, f)
	}
	return m.zap(n, f)
}

// bootstrap handles the pool-is-empty case: POL sets the pool's initial
// ratio directly from what it holds. This is not a zap.
func (m *Manager) bootstrap(n, f *big.Int) Report {
	if n.Sign() == 0 || f.Sign() == 0 {
		m.BufferNative, m.BufferForeign = n, f
		return Report{LPMinted: big.NewInt(0), NativeUsed: big.NewInt(0), ForeignUsed: big.NewInt(0)}
	}

	lr, err := m.pool.AddLiquidity(n, f)
	if err != nil {
		m.BufferNative, m.BufferForeign = n, f
		return Report{LPMinted: big.NewInt(0), NativeUsed: big.NewInt(0), ForeignUsed: big.NewInt(0)}
	}

	m.BalanceLP.Add(m.BalanceLP, lr.LPMinted)
	m.ContributedNative.Add(m.ContributedNative, lr.NativeUsed)
	m.ContributedForeign.Add(m.ContributedForeign, lr.ForeignUsed)
	m.BufferNative, m.BufferForeign = lr.NativeRest, lr.ForeignRest

	return Report{
		LPMinted:    lr.LPMinted,
		NativeUsed:  lr.NativeUsed,
		ForeignUsed: lr.ForeignUsed,
		Success:     lr.LPMinted.Sign() > 0,
	}
}

// zap handles the pool-is-live case: balanced top-up, then residual swap.
func (m *Manager) zap(n, f *big.Int) Report {
	nativeRest := new(big.Int).Set(n)
	foreignRest := new(big.Int).Set(f)

	lpMinted := big.NewInt(0)
	nativeUsedTotal := big.NewInt(0)
	foreignUsedTotal := big.NewInt(0)

	// Step 1: balanced top-up.
	if nativeRest.Sign() > 0 && foreignRest.Sign() > 0 {
		fByN, err := bigmath.MulDiv(nativeRest, m.pool.ReserveForeign, m.pool.ReserveNative)
		if err == nil {
			var useNative, useForeign *big.Int
			if fByN.Cmp(foreignRest) <= 0 {
				useNative, useForeign = nativeRest, fByN
			} else {
				nByF, err2 := bigmath.MulDiv(foreignRest, m.pool.ReserveNative, m.pool.ReserveForeign)
				if err2 == nil {
					useNative, useForeign = nByF, foreignRest
				}
			}
			if useNative != nil && useNative.Sign() > 0 && useForeign.Sign() > 0 {
				if lr, err3 := m.pool.AddLiquidity(useNative, useForeign); err3 == nil {
					m.BalanceLP.Add(m.BalanceLP, lr.LPMinted)
					m.ContributedNative.Add(m.ContributedNative, lr.NativeUsed)
					m.ContributedForeign.Add(m.ContributedForeign, lr.ForeignUsed)
					lpMinted.Add(lpMinted, lr.LPMinted)
					nativeUsedTotal.Add(nativeUsedTotal, lr.NativeUsed)
					foreignUsedTotal.Add(foreignUsedTotal, lr.ForeignUsed)
					nativeRest.Sub(nativeRest, lr.NativeUsed)
					foreignRest.Sub(foreignRest, lr.ForeignUsed)
				}
				// on failure, swallow the error and fall through to step 2.
			}
		}
	}

	// Step 2: residual swap.
	if foreignRest.Sign() > 0 && m.pool.HasLiquidity() {
		if sr, err := m.pool.SwapForeignToNative(foreignRest, nil); err == nil {
			nativeRest.Add(nativeRest, sr.AmountOut)
			m.ContributedForeign.Add(m.ContributedForeign, foreignRest)
			foreignRest.SetInt64(0)
		}
	}

	m.BufferNative, m.BufferForeign = nativeRest, foreignRest

	return Report{
		LPMinted:    lpMinted,
		NativeUsed:  nativeUsedTotal,
		ForeignUsed: foreignUsedTotal,
		Success:     lpMinted.Sign() > 0,
	}
}

