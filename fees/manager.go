// Package fees implements the fee manager: it buffers foreign and
// native fees forwarded by the router, swaps foreign into native once a
// threshold is crossed, and burns the resulting native supply. All
// failures are absorbed into the buffers.
package fees

import (
	"math/big"

	"github.com/krazyTry/utbc-economy/utbc"
	"github.com/krazyTry/utbc-economy/xyk"
)

// FeeTotals are the monotonic cumulative counters of fees ever received.
type FeeTotals struct {
	Native  *big.Int
	Foreign *big.Int
}

// Manager accrues and recycles router fees.
type Manager struct {
	pool   *xyk.Pool
	minter *utbc.Minter

	MinSwapForeign *big.Int

	BufferNative  *big.Int
	BufferForeign *big.Int

	TotalNativeBurned   *big.Int
	TotalForeignSwapped *big.Int

	Fees FeeTotals
}

// NewManager wires a Manager to the shared pool and minter.
func NewManager(pool *xyk.Pool, minter *utbc.Minter, minSwapForeign *big.Int) *Manager {
	return &Manager{
		pool:                pool,
		minter:              minter,
		MinSwapForeign:      new(big.Int).Set(minSwapForeign),
		BufferNative:        big.NewInt(0),
		BufferForeign:       big.NewInt(0),
		TotalNativeBurned:   big.NewInt(0),
		TotalForeignSwapped: big.NewInt(0),
		Fees: FeeTotals{
			Native:  big.NewInt(0),
			Foreign: big.NewInt(0),
		},
	}
}

// burnBuffer attempts to burn the entire native buffer, absorbing failure.
func (m *Manager) burnBuffer() {
	if m.BufferNative.Sign() <= 0 {
		return
	}
	rep, err := m.minter.BurnNative(m.BufferNative)
	if err != nil {
		return
	}
	m.TotalNativeBurned.Add(m.TotalNativeBurned, rep.NativeBurned)
	m.BufferNative = big.NewInt(0)
}

// ReceiveFeeNative credits a native fee and attempts an immediate burn.
func (m *Manager) ReceiveFeeNative(n *big.Int) {
	if n.Sign() <= 0 {
		return
	}
	m.Fees.Native.Add(m.Fees.Native, n)
	m.BufferNative.Add(m.BufferNative, n)
	m.burnBuffer()
}

// ReceiveFeeForeign credits a foreign fee, swapping to native and
// burning once the buffer crosses the configured threshold.
func (m *Manager) ReceiveFeeForeign(f *big.Int) {
	if f.Sign() <= 0 {
		return
	}
	m.Fees.Foreign.Add(m.Fees.Foreign, f)
	m.BufferForeign.Add(m.BufferForeign, f)

	if m.BufferForeign.Cmp(m.MinSwapForeign) < 0 || !m.pool.HasLiquidity() {
		return
	}

	swapped := new(big.Int).Set(m.BufferForeign)
	sr, err := m.pool.SwapForeignToNative(swapped, nil)
	if err != nil {
		return
	}
	m.BufferForeign = big.NewInt(0)
	m.BufferNative.Add(m.BufferNative, sr.AmountOut)
	m.TotalForeignSwapped.Add(m.TotalForeignSwapped, swapped)
	m.burnBuffer()
}
