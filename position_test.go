// FILE: position_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mrate  = 0.1
	mfixed = 5.0
	mult   = 10.0
)

func TestOpenWeightedAverageAndMargin(t *testing.T) {
	var p Position
	prior := p.Open(2, 100, mrate, mfixed, mult)
	assert.Equal(t, 0.0, prior)
	assert.Equal(t, uint32(2), p.Lots)
	assert.Equal(t, 100.0, p.AvgPrice)
	// (0.1·100·10 + 5) · 2
	assert.InDelta(t, 210.0, p.Margin, 1e-12)

	prior = p.Open(2, 200, mrate, mfixed, mult)
	assert.InDelta(t, 210.0, prior, 1e-12)
	assert.Equal(t, uint32(4), p.Lots)
	assert.InDelta(t, 150.0, p.AvgPrice, 1e-12)
	// margin invariant: (rate·avg·mult + fixed)·lots
	assert.InDelta(t, (mrate*150*mult+mfixed)*4, p.Margin, 1e-12)
}

func TestCloseReleasesMarginAtClosePrice(t *testing.T) {
	var p Position
	p.Open(4, 150, mrate, mfixed, mult)

	closed, released := p.Close(1, 180, mrate, mfixed, mult)
	assert.Equal(t, uint32(1), closed)
	// released is valued at the closing price, not the entry average
	assert.InDelta(t, (mrate*180*mult+mfixed)*1, released, 1e-12)
	assert.Equal(t, uint32(3), p.Lots)
	assert.InDelta(t, 150.0, p.AvgPrice, 1e-12)
	assert.InDelta(t, (mrate*150*mult+mfixed)*3, p.Margin, 1e-12)
}

func TestCloseClampsToOpenLots(t *testing.T) {
	var p Position
	p.Open(2, 100, mrate, mfixed, mult)
	closed, _ := p.Close(10, 100, mrate, mfixed, mult)
	assert.Equal(t, uint32(2), closed)
	assert.Equal(t, uint32(0), p.Lots)
	assert.Equal(t, 0.0, p.Margin)
}

func TestRealizedPnLSigns(t *testing.T) {
	// long: (p − a)·m·L
	assert.InDelta(t, (120.0-100.0)*mult*3, RealizedPnL(DirBuy, 120, 100, mult, 3), 1e-12)
	// short: (a − p)·m·L
	assert.InDelta(t, (100.0-120.0)*mult*3, RealizedPnL(DirSell, 120, 100, mult, 3), 1e-12)
}

func TestOpensThenFullCloseRealizes(t *testing.T) {
	var p Position
	p.Open(1, 100, mrate, mfixed, mult)
	p.Open(3, 120, mrate, mfixed, mult)
	require.InDelta(t, 115.0, p.AvgPrice, 1e-12)

	closed, _ := p.Close(4, 130, mrate, mfixed, mult)
	pnl := RealizedPnL(DirBuy, 130, 115, mult, closed)
	// Σ(p_close − avg)·m·lots = (130−115)·10·4
	assert.InDelta(t, 600.0, pnl, 1e-12)
	assert.Equal(t, uint32(0), p.Lots)
}

func TestUnrealizedPnL(t *testing.T) {
	var p Position
	p.Open(2, 100, mrate, mfixed, mult)
	assert.InDelta(t, (110.0-100.0)*mult*2, p.UnrealizedPnL(110, mult, DirBuy), 1e-12)
	assert.InDelta(t, (100.0-110.0)*mult*2, p.UnrealizedPnL(110, mult, DirSell), 1e-12)
}
