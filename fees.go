// FILE: fees.go
// Package main – Contract fee/margin table loaded from TOML.
//
// The table is keyed by contract code ("SHFE.rb", "CZCE.MA", ...) and is
// loaded once at start-up, then read-only. Each entry carries the contract
// multiplier, the minimum price move, and (rate, fixed) pairs for open,
// close, and close-today fees plus long and short margin.
//
// Notes:
//   - Close-today is parsed but the fill path charges plain close fees for
//     every close; the feeder-side settlement owns same-day distinctions.
//   - Unknown contract codes surface as errors, never panics.

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ContractInfo holds the fee/margin parameters of one contract.
type ContractInfo struct {
	Multiplier float64 `toml:"multiplier"`
	MinMove    float64 `toml:"min_move"`

	OpenFeeRate        float64 `toml:"open_fee_rate"`
	OpenFeeFixed       float64 `toml:"open_fee_fixed"`
	CloseFeeRate       float64 `toml:"close_fee_rate"`
	CloseFeeFixed      float64 `toml:"close_fee_fixed"`
	CloseTodayFeeRate  float64 `toml:"closetoday_fee_rate"`
	CloseTodayFeeFixed float64 `toml:"closetoday_fee_fixed"`

	LongMarginRate   float64 `toml:"long_margin_rate"`
	LongMarginFixed  float64 `toml:"long_margin_fixed"`
	ShortMarginRate  float64 `toml:"short_margin_rate"`
	ShortMarginFixed float64 `toml:"short_margin_fixed"`
}

// feePair returns the (rate, fixed) fee pair for an offset.
func (c *ContractInfo) feePair(offset Offset) (rate, fixed float64) {
	if offset == OffsetOpen {
		return c.OpenFeeRate, c.OpenFeeFixed
	}
	return c.CloseFeeRate, c.CloseFeeFixed
}

// marginPair returns the (rate, fixed) margin pair for a direction.
func (c *ContractInfo) marginPair(dir Direction) (rate, fixed float64) {
	if dir == DirBuy {
		return c.LongMarginRate, c.LongMarginFixed
	}
	return c.ShortMarginRate, c.ShortMarginFixed
}

// FeeTable maps contract code to its parameters.
type FeeTable map[string]ContractInfo

// LoadFees parses the TOML fee table at path.
func LoadFees(path string) (FeeTable, error) {
	var table FeeTable
	if _, err := toml.DecodeFile(path, &table); err != nil {
		return nil, fmt.Errorf("load fee table %s: %w", path, err)
	}
	return table, nil
}

// ParseFees parses a TOML fee table from a string.
func ParseFees(doc string) (FeeTable, error) {
	var table FeeTable
	if _, err := toml.Decode(doc, &table); err != nil {
		return nil, fmt.Errorf("parse fee table: %w", err)
	}
	return table, nil
}

// Lookup returns the parameters for a contract code.
func (t FeeTable) Lookup(code string) (ContractInfo, error) {
	info, ok := t[code]
	if !ok {
		return ContractInfo{}, fmt.Errorf("unknown contract code %q", code)
	}
	return info, nil
}
