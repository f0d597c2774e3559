// FILE: types_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardKeyScenarios(t *testing.T) {
	cases := []struct {
		symbol string
		want   uint16
	}{
		{"rb2505", 0x7262}, // 'r'<<8 | 'b' = 29282
		{"MA505", 0x4D41},  // 'M'<<8 | 'A' = 19777
		{"9abc", 0},        // leading non-letter
		{"X1", 0x5800},     // letter then digit = 22528
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SymbolFrom(c.symbol).ShardKey(), "symbol %q", c.symbol)
	}
}

func TestShardKeyEmptySymbol(t *testing.T) {
	var empty Symbol
	assert.Equal(t, uint16(0), empty.ShardKey())
}

func TestSymbolRoundTrip(t *testing.T) {
	s := SymbolFrom("rb2505")
	assert.Equal(t, "rb2505", s.String())
	assert.Equal(t, byte(0), s[6]) // NUL padding after the name

	long := SymbolFrom("0123456789abcdefOVERFLOW")
	assert.Equal(t, "0123456789abcdef", long.String())
}

func TestNameRoundTrip(t *testing.T) {
	n := NameFrom("Aberration20")
	assert.Equal(t, "Aberration20", n.String())
}

func TestSymbolsAreComparableMapKeys(t *testing.T) {
	m := map[Symbol]int{}
	m[SymbolFrom("rb2505")] = 1
	m[SymbolFrom("rb2505")] = 2
	m[SymbolFrom("MA505")] = 3
	assert.Len(t, m, 2)
	assert.Equal(t, 2, m[SymbolFrom("rb2505")])
}
