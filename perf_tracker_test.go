// FILE: perf_tracker_test.go
// Tracker invariants: fee + margin accounting on fills, conservation over
// balanced sequences, and the equity identity at tick end.

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() ContractInfo {
	return ContractInfo{
		Multiplier:      10,
		MinMove:         1,
		OpenFeeRate:     0.0001,
		OpenFeeFixed:    1,
		CloseFeeRate:    0.0002,
		CloseFeeFixed:   2,
		LongMarginRate:  0.09,
		ShortMarginRate: 0.1,
	}
}

func quoteTick(sym string, last, ask, bid float64) TickData {
	return TickData{Symbol: SymbolFrom(sym), Stamp: 1, Last: last, AP1: ask, BP1: bid}
}

func buy(offset Offset, lots uint32) Order {
	return Order{StgName: NameFrom("t"), Symbol: SymbolFrom("rb2505"), Volume: lots, Direction: DirBuy, Offset: offset}
}

func sell(offset Offset, lots uint32) Order {
	o := buy(offset, lots)
	o.Direction = DirSell
	return o
}

func TestOpenFreezesFeeAndMargin(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3025.5, 3026, 3025)

	o := buy(OffsetOpen, 2)
	p.OnFill(&o, &tick)

	fee := (0.0001*3026*10 + 1) * 2
	margin := 0.09 * 3026 * 10 * 2
	assert.InDelta(t, 1_000_000-fee-margin, p.AvailableCash(), 1e-9)
	assert.InDelta(t, fee, p.TotalFee(), 1e-9)

	pos := p.Position(DirBuy)
	require.NotNil(t, pos)
	assert.Equal(t, uint32(2), pos.Lots)
	assert.Equal(t, 3026.0, pos.AvgPrice) // BUY fills at best ask
	assert.InDelta(t, margin, pos.Margin, 1e-9)
}

func TestSellOpenUsesBidAndShortMargin(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3025.5, 3026, 3025)

	o := sell(OffsetOpen, 1)
	p.OnFill(&o, &tick)

	pos := p.Position(DirSell)
	require.NotNil(t, pos)
	assert.Equal(t, 3025.0, pos.AvgPrice) // SELL fills at best bid
	assert.InDelta(t, 0.1*3025*10, pos.Margin, 1e-9)
}

func TestBalancedSequenceConservesCash(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3025.5, 3026, 3025)

	open := buy(OffsetOpen, 2)
	p.OnFill(&open, &tick)
	cls := buy(OffsetClose, 2) // BUY selects the long leg on CLOSE as well
	p.OnFill(&cls, &tick)

	// same fill price both ways: realized 0, margin fully released
	assert.InDelta(t, 0, p.RealizedPnL(), 1e-9)
	assert.Nil(t, p.Position(DirBuy))
	assert.InDelta(t, 1_000_000, p.AvailableCash()+p.TotalFee()-p.RealizedPnL(), 1e-9)
}

func TestCloseRealizesProfitAndReleasesMargin(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	entry := quoteTick("rb2505", 3000, 3000, 2999)
	exit := quoteTick("rb2505", 3100, 3100, 3099)

	open := buy(OffsetOpen, 1)
	p.OnFill(&open, &entry)
	cashAfterOpen := p.AvailableCash()

	cls := buy(OffsetClose, 1)
	p.OnFill(&cls, &exit)

	realized := (3100.0 - 3000.0) * 10 // closed at ask 3100 against avg 3000
	assert.InDelta(t, realized, p.RealizedPnL(), 1e-9)

	fee := 0.0002*3100*10 + 2
	released := 0.09 * 3100 * 10
	assert.InDelta(t, cashAfterOpen-fee+realized+released, p.AvailableCash(), 1e-9)
	assert.Nil(t, p.Position(DirBuy))
}

func TestCloseWithoutPositionChargesFeeOnly(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3000, 3000, 2999)

	cls := sell(OffsetClose, 1)
	p.OnFill(&cls, &tick)

	fee := 0.0002*2999*10 + 2
	assert.InDelta(t, 1_000_000-fee, p.AvailableCash(), 1e-9)
	assert.Nil(t, p.Position(DirSell))
	assert.Len(t, p.Orders(), 1)
}

func TestNoneOrdersAreIgnored(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3000, 3000, 2999)

	o := buy(OffsetOpen, 1)
	o.Direction = DirNone
	p.OnFill(&o, &tick)
	o = buy(OffsetOpen, 1)
	o.Offset = OffsetNone
	p.OnFill(&o, &tick)

	assert.Equal(t, 1_000_000.0, p.AvailableCash())
	assert.Empty(t, p.Orders())
	assert.Empty(t, p.Fills())
}

func TestEquityIdentityAtTickEnd(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3025.5, 3026, 3025)

	o := buy(OffsetOpen, 2)
	p.OnFill(&o, &tick)
	p.OnTickEnd(&tick)

	pos := p.Position(DirBuy)
	require.NotNil(t, pos)
	unreal := pos.UnrealizedPnL(tick.Last, 10, DirBuy)
	assert.InDelta(t, p.AvailableCash()+unreal+pos.Margin, p.Equity(), 1e-9)
	assert.InDelta(t, pos.Margin, p.FrozenCash(), 1e-9)
}

func TestEquityCurveStartsAtInitCash(t *testing.T) {
	p := NewPerformanceTracker(500_000, testInfo())
	curve := p.EquityCurve()
	require.Len(t, curve, 1)
	assert.Equal(t, 500_000.0, curve[0])

	tick := quoteTick("rb2505", 3000, 3000, 2999)
	p.OnTickEnd(&tick)
	assert.Len(t, p.EquityCurve(), 2)
	assert.Equal(t, 500_000.0, p.Equity())
}

func TestNonFinitePricesPropagateWithoutPanic(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", math.NaN(), math.NaN(), math.NaN())

	o := buy(OffsetOpen, 1)
	p.OnFill(&o, &tick)
	p.OnTickEnd(&tick)
	assert.True(t, math.IsNaN(p.Equity()))
}

func TestFillsCarryIDsAndPrices(t *testing.T) {
	p := NewPerformanceTracker(1_000_000, testInfo())
	tick := quoteTick("rb2505", 3025.5, 3026, 3025)

	o := buy(OffsetOpen, 1)
	p.OnFill(&o, &tick)

	fills := p.Fills()
	require.Len(t, fills, 1)
	assert.NotEmpty(t, fills[0].ID)
	assert.Equal(t, 3026.0, fills[0].Price)
	assert.Greater(t, fills[0].Fee, 0.0)
}
