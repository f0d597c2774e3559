// FILE: aberration.go
// Package main – Aberration: Bollinger-band mean reversion, the reference
// strategy shipped with the engine.
//
// Per tick with price p = tick.Last, over a window of length N:
//   1) update rolling mean μ and stdev σ with p
//   2) close first: long closes when p < μ, short closes when p > μ
//   3) then open: long when p > μ+2σ, short when p < μ−2σ
//
// While fewer than N finite prices have been seen, σ is NaN (μ is the mean of
// the finite prices so far), so both band comparisons are false and the
// strategy stays flat without special-casing.

package main

import "fmt"

// Aberration holds the band state for one symbol.
type Aberration struct {
	name  StrategyName
	mean  *Mean
	stdev *StDev
	state int // -1 short, 0 flat, +1 long
}

// NewAberration returns an Aberration over an n-tick window, named
// "Aberration<n>".
func NewAberration(n int) *Aberration {
	return &Aberration{
		name:  NameFrom(fmt.Sprintf("Aberration%d", n)),
		mean:  NewMean(n),
		stdev: NewStDev(n),
	}
}

// Name returns the strategy's wire name.
func (a *Aberration) Name() StrategyName { return a.name }

// OnTick updates the bands and emits at most one 1-lot order.
func (a *Aberration) OnTick(tick *TickData) (Order, bool) {
	p := tick.Last
	mu := a.mean.Update(p)
	sigma := a.stdev.Update(p)

	mk := func(dir Direction, offset Offset) Order {
		return Order{
			StgName:   a.name,
			Symbol:    tick.Symbol,
			Timestamp: tick.Stamp,
			Volume:    1,
			Direction: dir,
			Offset:    offset,
		}
	}

	switch {
	case a.state == +1 && p < mu:
		a.state = 0
		return mk(DirSell, OffsetClose), true
	case a.state == -1 && p > mu:
		a.state = 0
		return mk(DirBuy, OffsetClose), true
	case a.state == 0 && p > mu+2*sigma:
		a.state = +1
		return mk(DirBuy, OffsetOpen), true
	case a.state == 0 && p < mu-2*sigma:
		a.state = -1
		return mk(DirSell, OffsetOpen), true
	}
	return Order{}, false
}
