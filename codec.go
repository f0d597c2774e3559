// FILE: codec.go
// Package main – Fixed-layout binary codecs for tick and order records.
//
// The upstream feeder and downstream matcher exchange raw C structs, one
// record per ZMQ frame. We keep the exact byte sequence those structs
// produce but read/write it with an explicit little-endian codec instead of
// reinterpreting memory. Sizes are compile-time constants and are the unit
// of framing on the wire.
//
// Layouts (offsets in bytes):
//   TickData  272 B: symbol[16] stamp(i64) 12×f64 volume(i64) 2×f64
//                    ap1..ap5 bp1..bp5 (f64) av1..av5 bv1..bv5 (i32) adj(f64)
//   Order      64 B: name[32] symbol[16] timestamp(i64) volume(u32)
//                    direction(u8) offset(u8) pad[2]
//
// The two Order padding bytes exist in the C struct (alignment to 8) and are
// transmitted verbatim as zeros.

package main

import (
	"encoding/binary"
	"math"
)

const (
	// TickDataSize is the framed size of one tick record.
	TickDataSize = 272
	// OrderSize is the framed size of one order record.
	OrderSize = 64
)

func putF64(b []byte, off int, v float64) int {
	binary.LittleEndian.PutUint64(b[off:], math.Float64bits(v))
	return off + 8
}

func getF64(b []byte, off int) (float64, int) {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[off:])), off + 8
}

// EncodeTick writes t into dst, which must hold TickDataSize bytes.
func EncodeTick(dst []byte, t *TickData) {
	_ = dst[TickDataSize-1]
	copy(dst[0:16], t.Symbol[:])
	binary.LittleEndian.PutUint64(dst[16:], uint64(t.Stamp))
	off := 24
	for _, v := range []float64{
		t.Open, t.High, t.Low, t.Last, t.LimitDown, t.LimitUp,
		t.PreClose, t.Close, t.PreSettle, t.Settle, t.PreOI, t.OI,
	} {
		off = putF64(dst, off, v)
	}
	binary.LittleEndian.PutUint64(dst[off:], uint64(t.Volume))
	off += 8
	for _, v := range []float64{
		t.Amount, t.AvgPrice,
		t.AP1, t.AP2, t.AP3, t.AP4, t.AP5,
		t.BP1, t.BP2, t.BP3, t.BP4, t.BP5,
	} {
		off = putF64(dst, off, v)
	}
	for _, v := range []int32{
		t.AV1, t.AV2, t.AV3, t.AV4, t.AV5,
		t.BV1, t.BV2, t.BV3, t.BV4, t.BV5,
	} {
		binary.LittleEndian.PutUint32(dst[off:], uint32(v))
		off += 4
	}
	putF64(dst, off, t.Adj)
}

// DecodeTick parses src (TickDataSize bytes) into t.
func DecodeTick(src []byte, t *TickData) {
	_ = src[TickDataSize-1]
	copy(t.Symbol[:], src[0:16])
	t.Stamp = int64(binary.LittleEndian.Uint64(src[16:]))
	off := 24
	for _, p := range []*float64{
		&t.Open, &t.High, &t.Low, &t.Last, &t.LimitDown, &t.LimitUp,
		&t.PreClose, &t.Close, &t.PreSettle, &t.Settle, &t.PreOI, &t.OI,
	} {
		*p, off = getF64(src, off)
	}
	t.Volume = int64(binary.LittleEndian.Uint64(src[off:]))
	off += 8
	for _, p := range []*float64{
		&t.Amount, &t.AvgPrice,
		&t.AP1, &t.AP2, &t.AP3, &t.AP4, &t.AP5,
		&t.BP1, &t.BP2, &t.BP3, &t.BP4, &t.BP5,
	} {
		*p, off = getF64(src, off)
	}
	for _, p := range []*int32{
		&t.AV1, &t.AV2, &t.AV3, &t.AV4, &t.AV5,
		&t.BV1, &t.BV2, &t.BV3, &t.BV4, &t.BV5,
	} {
		*p = int32(binary.LittleEndian.Uint32(src[off:]))
		off += 4
	}
	t.Adj, _ = getF64(src, off)
}

// EncodeOrder returns the OrderSize-byte wire form of o.
func EncodeOrder(o *Order) []byte {
	b := make([]byte, OrderSize)
	copy(b[0:32], o.StgName[:])
	copy(b[32:48], o.Symbol[:])
	binary.LittleEndian.PutUint64(b[48:], uint64(o.Timestamp))
	binary.LittleEndian.PutUint32(b[56:], o.Volume)
	b[60] = byte(o.Direction)
	b[61] = byte(o.Offset)
	// b[62:64] is struct padding, kept zero on the wire.
	return b
}

// DecodeOrder parses src (OrderSize bytes) into o.
func DecodeOrder(src []byte, o *Order) {
	_ = src[OrderSize-1]
	copy(o.StgName[:], src[0:32])
	copy(o.Symbol[:], src[32:48])
	o.Timestamp = int64(binary.LittleEndian.Uint64(src[48:]))
	o.Volume = binary.LittleEndian.Uint32(src[56:])
	o.Direction = Direction(src[60])
	o.Offset = Offset(src[61])
}
