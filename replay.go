// FILE: replay.go
// Package main – CSV tick loader and offline replay runner.
//
// What's here:
//   • loadTicksCSV(path) -> []TickData : reads symbol,stamp,last,ap1,bp1,...
//   • runReplay(path, symbols, fees, cfg)
//       - wires one Aberration + tracker per configured symbol
//       - drives them tick by tick without sockets
//       - logs final equity, fees, and realized P&L per strategy
//
// Notes:
//   • Unknown columns are ignored; headers are case-insensitive.
//   • Rows whose symbol is not configured are skipped, mirroring the live
//     SUB-side topic filter.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// loadTicksCSV reads a generic tick CSV. Recognized columns: symbol (rows
// without one are skipped), stamp/time/timestamp, last/price/close, ap1/ask,
// bp1/bid, volume/vol. A missing or zero ap1/bp1 defaults to last; every
// other field defaults to zero.
func loadTicksCSV(path string) ([]TickData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var out []TickData
	var headers []string
	rowIdx := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rowIdx == 0 {
			headers = rec
			rowIdx++
			continue
		}
		row := map[string]string{}
		for j, h := range headers {
			k := strings.ToLower(strings.TrimSpace(h))
			if j < len(rec) {
				row[k] = strings.TrimSpace(rec[j])
			}
		}
		sym := row["symbol"]
		if sym == "" {
			continue
		}
		num := func(keys ...string) float64 {
			for _, k := range keys {
				if v := row[k]; v != "" {
					x, err := strconv.ParseFloat(v, 64)
					if err == nil {
						return x
					}
				}
			}
			return 0
		}
		stamp, _ := strconv.ParseInt(firstOf(row, "stamp", "time", "timestamp"), 10, 64)
		tick := TickData{
			Symbol: SymbolFrom(sym),
			Stamp:  stamp,
			Last:   num("last", "price", "close"),
			AP1:    num("ap1", "ask"),
			BP1:    num("bp1", "bid"),
			Volume: int64(num("volume", "vol")),
		}
		if tick.AP1 == 0 {
			tick.AP1 = tick.Last
		}
		if tick.BP1 == 0 {
			tick.BP1 = tick.Last
		}
		out = append(out, tick)
		rowIdx++
	}
	return out, nil
}

// firstOf returns the first non-empty value for keys in m.
func firstOf(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}

// runReplay drives the configured strategies over a CSV tick file without
// touching the network, then reports per-strategy results.
func runReplay(path string, symbols [][2]string, fees FeeTable, cfg Config) error {
	ticks, err := loadTicksCSV(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Printf("[REPLAY] %d ticks from %s", len(ticks), path)

	book := make(map[Symbol][]slot)
	for _, sc := range symbols {
		info, err := fees.Lookup(sc[1])
		if err != nil {
			return err
		}
		sym := SymbolFrom(sc[0])
		book[sym] = append(book[sym], slot{
			stg:  NewAberration(cfg.AberrationWindow),
			perf: NewPerformanceTracker(cfg.InitCash, info),
		})
	}

	for i := range ticks {
		tick := &ticks[i]
		slots, ok := book[tick.Symbol]
		if !ok {
			continue
		}
		for j := range slots {
			if order, fired := slots[j].stg.OnTick(tick); fired {
				slots[j].perf.OnFill(&order, tick)
			}
		}
		for j := range slots {
			slots[j].perf.OnTickEnd(tick)
		}
	}

	for sym, slots := range book {
		for _, s := range slots {
			log.Printf("[REPLAY] %s/%s equity=%.2f fee=%.2f realized=%.2f orders=%d",
				sym, s.stg.Name(), s.perf.Equity(), s.perf.TotalFee(),
				s.perf.RealizedPnL(), len(s.perf.Orders()))
		}
	}
	return nil
}
