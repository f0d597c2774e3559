// FILE: perf_tracker.go
// Package main – Simulated fills and per-strategy performance accounting.
//
// One PerformanceTracker per (symbol, strategy) pair. Orders never touch a
// real venue: each is filled immediately against the top of book of the tick
// that produced it (BUY lifts ap1, SELL hits bp1), like the paper execution
// path of a dry-run broker.
//
// Two events drive the state machine:
//   • OnFill(order, tick) – charge the fee, then apply the OPEN or CLOSE leg
//     to the long/short ledger (order.Direction selects the leg in both
//     cases; see DESIGN.md for the convention question).
//   • OnTickEnd(tick)     – re-mark unrealized P&L and margin against
//     tick.Last and append one equity sample.
//
// The tracker never fails: non-finite prices propagate into non-finite
// equity samples, and NONE direction/offset orders are ignored.

package main

import (
	"github.com/google/uuid"
)

// FillRecord is one simulated execution kept for post-trade analysis.
type FillRecord struct {
	ID    string // client-side fill id
	Order Order
	Price float64
	Fee   float64
}

// PerformanceTracker simulates fills and tracks cash, positions, fees,
// realized P&L, and the equity curve for one strategy on one symbol.
type PerformanceTracker struct {
	initCash      float64
	availableCash float64
	positions     map[Direction]*Position
	info          ContractInfo

	totalFee    float64
	realizedPnL float64
	frozenCash  float64
	orders      []Order
	fills       []FillRecord
	equity      []float64
}

// NewPerformanceTracker returns a tracker seeded with initCash; the equity
// curve starts with that value.
func NewPerformanceTracker(initCash float64, info ContractInfo) *PerformanceTracker {
	return &PerformanceTracker{
		initCash:      initCash,
		availableCash: initCash,
		positions:     make(map[Direction]*Position),
		info:          info,
		equity:        []float64{initCash},
	}
}

// OnFill applies order as an immediate fill against tick's top of book.
func (p *PerformanceTracker) OnFill(order *Order, tick *TickData) {
	if order.Direction == DirNone || order.Offset == OffsetNone {
		return
	}

	// BUY fills at best ask, SELL at best bid (aggressive marketable order).
	price := tick.AP1
	if order.Direction == DirSell {
		price = tick.BP1
	}

	feeRate, feeFixed := p.info.feePair(order.Offset)
	fee := (feeRate*price*p.info.Multiplier + feeFixed) * float64(order.Volume)
	p.totalFee += fee
	p.availableCash -= fee

	marginRate, marginFixed := p.info.marginPair(order.Direction)

	switch order.Offset {
	case OffsetOpen:
		pos, ok := p.positions[order.Direction]
		if !ok {
			pos = &Position{}
			p.positions[order.Direction] = pos
		}
		prior := pos.Open(order.Volume, price, marginRate, marginFixed, p.info.Multiplier)
		p.availableCash -= pos.Margin - prior
	case OffsetClose:
		// BUY closes the long slot, SELL the short slot. A close with no
		// matching slot is a position no-op but the fee above still applies.
		pos, ok := p.positions[order.Direction]
		if ok {
			closed, released := pos.Close(order.Volume, price, marginRate, marginFixed, p.info.Multiplier)
			realized := RealizedPnL(order.Direction, price, pos.AvgPrice, p.info.Multiplier, closed)
			p.realizedPnL += realized
			p.availableCash += realized
			p.availableCash += released
			if pos.Lots == 0 {
				delete(p.positions, order.Direction)
			}
		}
	}

	p.orders = append(p.orders, *order)
	p.fills = append(p.fills, FillRecord{
		ID:    uuid.New().String(),
		Order: *order,
		Price: price,
		Fee:   fee,
	})
}

// OnTickEnd re-marks every open position against tick.Last and appends
// cash + unrealized + margin to the equity curve.
func (p *PerformanceTracker) OnTickEnd(tick *TickData) {
	var totalUnreal, totalMargin float64
	for dir, pos := range p.positions {
		totalUnreal += pos.UnrealizedPnL(tick.Last, p.info.Multiplier, dir)
		totalMargin += pos.Margin
	}
	p.frozenCash = totalMargin
	p.equity = append(p.equity, p.availableCash+totalUnreal+totalMargin)
}

// Equity returns the latest equity sample.
func (p *PerformanceTracker) Equity() float64 { return p.equity[len(p.equity)-1] }

// EquityCurve returns the recorded equity series, initial cash first.
func (p *PerformanceTracker) EquityCurve() []float64 { return p.equity }

// AvailableCash returns the cash not reserved as margin.
func (p *PerformanceTracker) AvailableCash() float64 { return p.availableCash }

// TotalFee returns the accumulated fees.
func (p *PerformanceTracker) TotalFee() float64 { return p.totalFee }

// RealizedPnL returns the accumulated realized profit and loss.
func (p *PerformanceTracker) RealizedPnL() float64 { return p.realizedPnL }

// FrozenCash returns the margin outstanding at the last tick end.
func (p *PerformanceTracker) FrozenCash() float64 { return p.frozenCash }

// Position returns the open position for a direction, or nil.
func (p *PerformanceTracker) Position(dir Direction) *Position { return p.positions[dir] }

// Orders returns the order history.
func (p *PerformanceTracker) Orders() []Order { return p.orders }

// Fills returns the simulated execution log.
func (p *PerformanceTracker) Fills() []FillRecord { return p.fills }
