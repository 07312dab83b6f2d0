package fees

import (
	"math/big"
	"testing"

	"github.com/krazyTry/utbc-economy/pol"
	"github.com/krazyTry/utbc-economy/shared"
	"github.com/krazyTry/utbc-economy/utbc"
	"github.com/krazyTry/utbc-economy/xyk"
)

func buildStack(t *testing.T) (*xyk.Pool, *utbc.Minter, *Manager) {
	p, err := xyk.NewPool(big.NewInt(3000))
	if err != nil {
		t.Fatal(err)
	}
	mgr := pol.NewManager(p)
	m, err := utbc.NewMinter(big.NewInt(1_000_000), big.NewInt(1000), shared.DefaultConfig().Shares, mgr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.MintNative(big.NewInt(10_000_000_000_000)); err != nil {
		t.Fatal(err)
	}
	fm := NewManager(p, m, big.NewInt(10_000_000_000)) // PRECISION/100
	return p, m, fm
}

func TestReceiveFeeNativeBurnsImmediately(t *testing.T) {
	_, m, fm := buildStack(t)
	supplyBefore := new(big.Int).Set(m.Supply)

	fm.ReceiveFeeNative(big.NewInt(1000))
	if fm.BufferNative.Sign() != 0 {
		t.Fatalf("expected buffer drained by burn, got %s", fm.BufferNative)
	}
	if m.Supply.Cmp(supplyBefore) >= 0 {
		t.Fatal("supply should have decreased from the burn")
	}
	if fm.TotalNativeBurned.Sign() <= 0 {
		t.Fatal("expected total_native_burned > 0")
	}
}

func TestReceiveFeeNativeNoOpOnNonPositive(t *testing.T) {
	_, _, fm := buildStack(t)
	fm.ReceiveFeeNative(big.NewInt(0))
	if fm.Fees.Native.Sign() != 0 {
		t.Fatal("expected no-op")
	}
}

func TestReceiveFeeForeignBelowThresholdBuffers(t *testing.T) {
	_, _, fm := buildStack(t)
	fm.ReceiveFeeForeign(big.NewInt(1))
	if fm.BufferForeign.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected buffered, got %s", fm.BufferForeign)
	}
	if fm.TotalForeignSwapped.Sign() != 0 {
		t.Fatal("should not have swapped yet")
	}
}

func TestReceiveFeeForeignCrossingThresholdSwapsAndBurns(t *testing.T) {
	_, m, fm := buildStack(t)
	supplyBefore := new(big.Int).Set(m.Supply)

	fm.ReceiveFeeForeign(big.NewInt(20_000_000_000)) // above min_swap_foreign
	if fm.BufferForeign.Sign() != 0 {
		t.Fatal("expected foreign buffer cleared after swap")
	}
	if fm.TotalForeignSwapped.Sign() <= 0 {
		t.Fatal("expected a recorded swap")
	}
	if m.Supply.Cmp(supplyBefore) >= 0 {
		t.Fatal("supply should strictly decrease from the triggered burn")
	}
}

func TestReceiveFeeForeignNoSwapWithoutLiveDrainsNothing(t *testing.T) {
	p, err := xyk.NewPool(big.NewInt(3000))
	if err != nil {
		t.Fatal(err)
	}
	mgr := pol.NewManager(p)
	m, err := utbc.NewMinter(big.NewInt(1_000_000), big.NewInt(0), shared.DefaultConfig().Shares, mgr)
	if err != nil {
		t.Fatal(err)
	}
	fm := NewManager(p, m, big.NewInt(1))
	fm.ReceiveFeeForeign(big.NewInt(100))
	if fm.BufferForeign.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("expected fee buffered when pool is not live, got %s", fm.BufferForeign)
	}
}
