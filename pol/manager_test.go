package pol

import (
	"math/big"
	"testing"

	"github.com/krazyTry/utbc-economy/xyk"
)

func newPool(t *testing.T, feePPM int64) *xyk.Pool {
	p, err := xyk.NewPool(big.NewInt(feePPM))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBootstrapFromEmptyPool(t *testing.T) {
	pool := newPool(t, 3000)
	m := NewManager(pool)

	rep := m.AddLiquidity(big.NewInt(1_000_000), big.NewInt(4_000_000))
	if !rep.Success {
		t.Fatal("expected success on bootstrap")
	}
	if m.BalanceLP.Sign() <= 0 {
		t.Fatal("expected positive LP balance")
	}
	if !pool.HasLiquidity() {
		t.Fatal("pool should now be live")
	}
}

func TestBootstrapZeroSideBuffers(t *testing.T) {
	pool := newPool(t, 0)
	m := NewManager(pool)

	rep := m.AddLiquidity(big.NewInt(0), big.NewInt(1000))
	if rep.Success {
		t.Fatal("expected no-op when one side is zero")
	}
	if m.BufferForeign.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("buffer_foreign = %s, want 1000", m.BufferForeign)
	}
	if pool.HasLiquidity() {
		t.Fatal("pool must remain empty")
	}
}

func TestZapBalancedTopUpThenSwapResidual(t *testing.T) {
	pool := newPool(t, 0)
	m := NewManager(pool)
	m.AddLiquidity(big.NewInt(1_000_000), big.NewInt(1_000_000))

	// unbalanced contribution: ratio differs from pool's 1:1
	rep := m.AddLiquidity(big.NewInt(100_000), big.NewInt(500_000))
	if !rep.Success {
		t.Fatal("expected some LP minted from the balanced portion")
	}
	// All foreign should end up used (balanced + swapped), buffers near zero.
	if m.BufferForeign.Sign() != 0 {
		t.Fatalf("expected foreign buffer drained, got %s", m.BufferForeign)
	}
}

func TestLPNeverDecreases(t *testing.T) {
	pool := newPool(t, 3000)
	m := NewManager(pool)
	m.AddLiquidity(big.NewInt(1_000_000), big.NewInt(1_000_000))
	first := new(big.Int).Set(m.BalanceLP)

	m.AddLiquidity(big.NewInt(10_000), big.NewInt(10_000))
	if m.BalanceLP.Cmp(first) < 0 {
		t.Fatal("balance_lp must never decrease")
	}
	if m.ContributedNative.Sign() < 0 || m.ContributedForeign.Sign() < 0 {
		t.Fatal("contributed counters must stay non-negative")
	}
}

func TestBuffersAbsorbFailureWithoutError(t *testing.T) {
	pool := newPool(t, 3000)
	m := NewManager(pool)
	// Extremely tiny amounts on an empty pool: isqrt(1*1) = 1, which is
	// fine, so use zero-product to force the buffered path deterministically.
	rep := m.AddLiquidity(big.NewInt(0), big.NewInt(0))
	if rep.Success {
		t.Fatal("expected no LP minted")
	}
	if rep.LPMinted.Sign() != 0 {
		t.Fatal("lp_minted must be zero, never an error")
	}
}
