// Package utbc implements the unidirectional bonding-curve minter: a
// linear price curve over cumulative supply, with mints distributed
// among user/POL/treasury/team shares and no reverse path back to
// foreign.
package utbc

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/utbc-economy/bigmath"
	"github.com/krazyTry/utbc-economy/display"
	"github.com/krazyTry/utbc-economy/pol"
	"github.com/krazyTry/utbc-economy/shared"
)

// Minter tracks native supply and issues new units against foreign
// payments along the bonding curve.
type Minter struct {
	PriceInitial *big.Int
	SlopePPM     *big.Int
	Shares       shared.ShareConfig

	Supply   *big.Int
	Treasury *big.Int
	Team     *big.Int

	pol *pol.Manager
}

// NewMinter constructs a Minter that deposits its POL share into mgr.
func NewMinter(priceInitial, slopePPM *big.Int, shares shared.ShareConfig, mgr *pol.Manager) (*Minter, error) {
	if priceInitial == nil || priceInitial.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "price_initial must be positive")
	}
	if slopePPM == nil || slopePPM.Sign() < 0 {
		return nil, shared.New(shared.InvalidArgument, "slope_ppm must be non-negative")
	}
	if !shares.SumsToPPM() {
		return nil, shared.New(shared.InvalidArgument, "shares must sum to PPM")
	}
	return &Minter{
		PriceInitial: new(big.Int).Set(priceInitial),
		SlopePPM:     new(big.Int).Set(slopePPM),
		Shares:       shares,
		Supply:       big.NewInt(0),
		Treasury:     big.NewInt(0),
		Team:         big.NewInt(0),
		pol:          mgr,
	}, nil
}

// GetPrice returns the spot price at the current supply.
func (m *Minter) GetPrice() (*big.Int, error) {
	return spotPrice(m.PriceInitial, m.SlopePPM, m.Supply)
}

// CalculateMint is a pure quote: the largest delta the foreign payment
// buys, or zero.
func (m *Minter) CalculateMint(foreignIn *big.Int) (*big.Int, error) {
	if foreignIn.Sign() <= 0 {
		return big.NewInt(0), nil
	}
	return solveMint(m.PriceInitial, m.SlopePPM, m.Supply, foreignIn)
}

// Distribution is the four-way split of a minted quantity.
type Distribution struct {
	User     *big.Int
	Pol      *big.Int
	Treasury *big.Int
	Team     *big.Int
}

func (m *Minter) distribute(minted *big.Int) (*Distribution, error) {
	user, err := bigmath.MulDiv(minted, m.Shares.UserPPM, shared.PPM)
	if err != nil {
		return nil, err
	}
	polShare, err := bigmath.MulDiv(minted, m.Shares.PolPPM, shared.PPM)
	if err != nil {
		return nil, err
	}
	treasury, err := bigmath.MulDiv(minted, m.Shares.TreasuryPPM, shared.PPM)
	if err != nil {
		return nil, err
	}
	team := new(big.Int).Sub(minted, user)
	team.Sub(team, polShare)
	team.Sub(team, treasury)

	return &Distribution{User: user, Pol: polShare, Treasury: treasury, Team: team}, nil
}

// MintQuote is the read-only preview returned by GetMintQuote.
type MintQuote struct {
	Minted *big.Int
	Distribution
}

// GetMintQuote previews a mint, returning nil when it would mint nothing.
func (m *Minter) GetMintQuote(foreignIn *big.Int) (*MintQuote, error) {
	minted, err := m.CalculateMint(foreignIn)
	if err != nil {
		return nil, err
	}
	if minted.Sign() == 0 {
		return nil, nil
	}
	dist, err := m.distribute(minted)
	if err != nil {
		return nil, err
	}
	return &MintQuote{Minted: minted, Distribution: *dist}, nil
}

// MintReport is the full record of a MintNative call.
type MintReport struct {
	ForeignIn      *big.Int
	TotalNative    *big.Int
	UserNative     *big.Int
	PolNative      *big.Int
	TreasuryNative *big.Int
	TeamNative     *big.Int
	PriceBefore    *big.Int
	PriceAfter     *big.Int
	Pol            pol.Report
}

func (r *MintReport) String() string {
	return fmt.Sprintf("mint: foreign_in=%s total=%s user=%s pol=%s treasury=%s team=%s price=%s->%s",
		display.Amount(r.ForeignIn), display.Amount(r.TotalNative), display.Amount(r.UserNative),
		display.Amount(r.PolNative), display.Amount(r.TreasuryNative), display.Amount(r.TeamNative),
		display.Price(r.PriceBefore), display.Price(r.PriceAfter))
}

// MintNative executes a mint for foreignIn, crediting shares and handing
// the POL share plus the full foreign payment to the POL manager.
func (m *Minter) MintNative(foreignIn *big.Int) (*MintReport, error) {
	priceBefore, err := m.GetPrice()
	if err != nil {
		return nil, err
	}

	delta, err := m.CalculateMint(foreignIn)
	if err != nil {
		return nil, err
	}
	if delta.Sign() == 0 {
		return nil, shared.New(shared.InvalidArgument, "insufficient amount")
	}

	dist, err := m.distribute(delta)
	if err != nil {
		return nil, err
	}

	m.Supply.Add(m.Supply, delta)
	m.Treasury.Add(m.Treasury, dist.Treasury)
	m.Team.Add(m.Team, dist.Team)

	polReport := m.pol.AddLiquidity(dist.Pol, foreignIn)

	priceAfter, err := m.GetPrice()
	if err != nil {
		return nil, err
	}

	return &MintReport{
		ForeignIn:      new(big.Int).Set(foreignIn),
		TotalNative:    delta,
		UserNative:     dist.User,
		PolNative:      dist.Pol,
		TreasuryNative: dist.Treasury,
		TeamNative:     dist.Team,
		PriceBefore:    priceBefore,
		PriceAfter:     priceAfter,
		Pol:            polReport,
	}, nil
}

// BurnReport records a BurnNative call.
type BurnReport struct {
	NativeBurned *big.Int
	SupplyBefore *big.Int
	SupplyAfter  *big.Int
}

func (r *BurnReport) String() string {
	return fmt.Sprintf("burn: amount=%s supply=%s->%s",
		display.Amount(r.NativeBurned), display.Amount(r.SupplyBefore), display.Amount(r.SupplyAfter))
}

// BurnNative decrements supply by amount. amount must be in (0, supply].
func (m *Minter) BurnNative(amount *big.Int) (*BurnReport, error) {
	if amount.Sign() <= 0 {
		return nil, shared.New(shared.InvalidArgument, "burn amount must be positive")
	}
	if amount.Cmp(m.Supply) > 0 {
		return nil, shared.New(shared.SupplyExhausted, "burn amount exceeds supply")
	}
	before := new(big.Int).Set(m.Supply)
	m.Supply.Sub(m.Supply, amount)
	return &BurnReport{
		NativeBurned: new(big.Int).Set(amount),
		SupplyBefore: before,
		SupplyAfter:  new(big.Int).Set(m.Supply),
	}, nil
}
