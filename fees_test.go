// FILE: fees_test.go

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feeEntry = `['%s']
multiplier = %g
min_move = 1.0
open_fee_rate = 0.0001
open_fee_fixed = 0.0
close_fee_rate = 0.0001
close_fee_fixed = 0.0
closetoday_fee_rate = 0.00005
closetoday_fee_fixed = 0.0
long_margin_rate = 0.09
long_margin_fixed = 0.0
short_margin_rate = 0.1
short_margin_fixed = 0.0

`

func TestParseFees(t *testing.T) {
	doc := fmt.Sprintf(feeEntry, "SHFE.rb", 10.0) + fmt.Sprintf(feeEntry, "CZCE.MA", 10.0)
	table, err := ParseFees(doc)
	require.NoError(t, err)
	require.Len(t, table, 2)

	info, err := table.Lookup("SHFE.rb")
	require.NoError(t, err)
	assert.Equal(t, 10.0, info.Multiplier)
	assert.Equal(t, 0.0001, info.OpenFeeRate)
	assert.Equal(t, 0.00005, info.CloseTodayFeeRate)
	assert.Equal(t, 0.09, info.LongMarginRate)
	assert.Equal(t, 0.1, info.ShortMarginRate)
}

func TestParseFeesLargeTable(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 83; i++ {
		fmt.Fprintf(&b, feeEntry, fmt.Sprintf("SHFE.c%02d", i), float64(i+1))
	}
	table, err := ParseFees(b.String())
	require.NoError(t, err)
	assert.Len(t, table, 83)
}

func TestLookupMissingKeyIsRecoverable(t *testing.T) {
	table, err := ParseFees(fmt.Sprintf(feeEntry, "SHFE.rb", 10.0))
	require.NoError(t, err)

	_, err = table.Lookup("DCE.m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DCE.m")
}

func TestLoadFeesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.toml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(feeEntry, "SHFE.rb", 10.0)), 0o644))

	table, err := LoadFees(path)
	require.NoError(t, err)
	assert.Len(t, table, 1)

	_, err = LoadFees(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFeeAndMarginPairSelection(t *testing.T) {
	info := ContractInfo{
		OpenFeeRate: 1, OpenFeeFixed: 2,
		CloseFeeRate: 3, CloseFeeFixed: 4,
		LongMarginRate: 5, LongMarginFixed: 6,
		ShortMarginRate: 7, ShortMarginFixed: 8,
	}
	r, f := info.feePair(OffsetOpen)
	assert.Equal(t, []float64{1, 2}, []float64{r, f})
	r, f = info.feePair(OffsetClose)
	assert.Equal(t, []float64{3, 4}, []float64{r, f})
	r, f = info.marginPair(DirBuy)
	assert.Equal(t, []float64{5, 6}, []float64{r, f})
	r, f = info.marginPair(DirSell)
	assert.Equal(t, []float64{7, 8}, []float64{r, f})
}
