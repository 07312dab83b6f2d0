package economy

import (
	"math/big"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/krazyTry/utbc-economy/shared"
)

// scenarioFixtures holds the canonical economy-wide scenarios as a JSON
// blob, read back with gjson path queries instead of unmarshaling into
// a struct.
const scenarioFixtures = `{
  "scenarios": [
    {"name": "S1_bootstrap", "foreign": 10000, "minNativeOut": 0},
    {"name": "S2_below_minimum", "foreign": 50, "minNativeOut": 0},
    {"name": "S6_fee_threshold", "foreign": 5000, "minNativeOut": 0}
  ]
}`

func scenario(name string) (foreign int64, minOut int64) {
	arr := gjson.Get(scenarioFixtures, "scenarios")
	var f, m int64
	arr.ForEach(func(_, v gjson.Result) bool {
		if v.Get("name").String() == name {
			f = v.Get("foreign").Int()
			m = v.Get("minNativeOut").Int()
			return false
		}
		return true
	})
	return f, m
}

func TestConstructionDefaultConfig(t *testing.T) {
	sys, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	if sys.Pool.HasLiquidity() {
		t.Fatal("freshly constructed pool must be empty")
	}
}

func TestConstructionRejectsBadShareSum(t *testing.T) {
	cfg := shared.DefaultConfig()
	cfg.Shares.TeamPPM = new(big.Int).Add(cfg.Shares.TeamPPM, big.NewInt(1))
	if _, err := New(cfg); !shared.Is(err, shared.InvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestS1BootstrapMintMatchesQuadraticSolve(t *testing.T) {
	sys, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	foreign, minOut := scenario("S1_bootstrap")

	foreignFee, _ := new(big.Int).SetString("0", 10)
	foreignFee.Mul(ScaleForeign(foreign), sys.Config.FeeRouterPPM)
	foreignFee.Div(foreignFee, shared.PPM)
	foreignNet := new(big.Int).Sub(ScaleForeign(foreign), foreignFee)

	// Quote on the fresh minter, before the swap advances supply.
	wantDelta, err := sys.Minter.CalculateMint(foreignNet)
	if err != nil {
		t.Fatal(err)
	}

	rep, err := sys.Router.SwapForeignToNative(ScaleForeign(foreign), big.NewInt(minOut))
	if err != nil {
		t.Fatal(err)
	}

	if sys.Minter.Supply.Cmp(wantDelta) != 0 {
		t.Fatalf("supply = %s, want the quadratic solve's delta %s", sys.Minter.Supply, wantDelta)
	}
	if sys.Minter.Supply.Sign() <= 0 {
		t.Fatal("expected positive minted supply")
	}
	if !sys.Pool.HasLiquidity() {
		t.Fatal("pool should be live after POL's bootstrap add_liquidity")
	}
	if sys.FeeMgr.Fees.Foreign.Sign() <= 0 {
		t.Fatal("router fee should have reached the fee manager")
	}
	_ = rep
}

func TestS2SubMinimumRejected(t *testing.T) {
	sys, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	foreign, minOut := scenario("S2_below_minimum")
	_, err = sys.Router.SwapForeignToNative(ScaleForeign(foreign), big.NewInt(minOut))
	if !shared.Is(err, shared.BelowMinimumThreshold) {
		t.Fatalf("expected BelowMinimumThreshold, got %v", err)
	}
}

func TestPOLLPNonDecreasingAcrossOperations(t *testing.T) {
	sys, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sys.Router.SwapForeignToNative(ScaleForeign(10_000), big.NewInt(0)); err != nil {
		t.Fatal(err)
	}
	afterFirst := new(big.Int).Set(sys.PolMgr.BalanceLP)

	if _, err := sys.Router.SwapForeignToNative(ScaleForeign(1_000), big.NewInt(0)); err != nil {
		t.Fatal(err)
	}
	if sys.PolMgr.BalanceLP.Cmp(afterFirst) < 0 {
		t.Fatal("balance_lp must be monotonically non-decreasing")
	}
}

func TestS6FeeThresholdScenario(t *testing.T) {
	sys, err := NewDefault()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sys.Router.SwapForeignToNative(ScaleForeign(10_000), big.NewInt(0)); err != nil {
		t.Fatal(err)
	}
	foreign, minOut := scenario("S6_fee_threshold")
	supplyBefore := new(big.Int).Set(sys.Minter.Supply)
	if _, err := sys.Router.SwapForeignToNative(ScaleForeign(foreign), big.NewInt(minOut)); err != nil {
		t.Fatal(err)
	}
	if sys.FeeMgr.TotalForeignSwapped.Sign() <= 0 {
		t.Fatal("expected the large follow-up trade to cross min_swap_foreign and trigger a swap")
	}
	if sys.Minter.Supply.Cmp(supplyBefore) >= 0 {
		t.Fatal("expected the fee-triggered burn to strictly decrease supply")
	}
}
