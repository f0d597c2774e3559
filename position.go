// FILE: position.go
// Package main – Per-direction position ledger.
//
// A Position tracks one direction (long or short) of one contract: open lot
// count, weighted-average entry price, and the margin reserved against it.
// The tracker removes the ledger entry once lots reach zero; avg price is
// meaningless at zero lots.
//
// Margin invariant: margin = (rate·avgPrice·multiplier + fixed) · lots.

package main

// Position is one direction of one contract.
type Position struct {
	Lots     uint32
	AvgPrice float64
	Margin   float64
}

// Open grows the position by lots at price, re-deriving the weighted-average
// entry price and the reserved margin. It returns the margin that was
// reserved before the update so the caller can freeze only the increment.
func (p *Position) Open(lots uint32, price, marginRate, marginFixed, multiplier float64) float64 {
	prior := p.Margin
	total := p.Lots + lots
	if p.Lots == 0 {
		p.AvgPrice = price
	} else {
		p.AvgPrice = (p.AvgPrice*float64(p.Lots) + price*float64(lots)) / float64(total)
	}
	p.Lots = total
	p.Margin = (marginRate*p.AvgPrice*multiplier + marginFixed) * float64(p.Lots)
	return prior
}

// Close reduces the position by min(lots, p.Lots) and recomputes the
// remaining margin from the untouched average price. It returns the lots
// actually closed and the margin released for them, valued at the closing
// price.
func (p *Position) Close(lots uint32, price, marginRate, marginFixed, multiplier float64) (closed uint32, released float64) {
	closed = lots
	if closed > p.Lots {
		closed = p.Lots
	}
	released = (marginRate*price*multiplier + marginFixed) * float64(closed)
	p.Lots -= closed
	p.Margin = (marginRate*p.AvgPrice*multiplier + marginFixed) * float64(p.Lots)
	return closed, released
}

// RealizedPnL is the profit of closing lots at price against avg entry, for
// the given direction.
func RealizedPnL(dir Direction, price, avg, multiplier float64, lots uint32) float64 {
	diff := price - avg
	if dir == DirSell {
		diff = avg - price
	}
	return diff * multiplier * float64(lots)
}

// UnrealizedPnL marks the open lots against a reference price.
func (p *Position) UnrealizedPnL(last, multiplier float64, dir Direction) float64 {
	return RealizedPnL(dir, last, p.AvgPrice, multiplier, p.Lots)
}
