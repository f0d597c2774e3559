// FILE: rolling.go
// Package main – Incremental rolling-window operators used by strategies.
//
// A Ring of capacity N holds the last N samples, initialized to NaN so the
// operators report "not enough data" until the window fills. On top of it:
//   • Sum         – running sum; NaN while any sample in the window is non-finite
//   • Mean        – running mean over the finite samples in the window
//   • WeightedSum – dot product of a fixed weight vector with the window
//   • StDev       – sample standard deviation from two Sums (x and x²)
//
// Updates are O(1); the NaN count tracks how many non-finite samples sit in
// the window so evicting one keeps the running sum exact.

package main

import "math"

// Ring is a fixed-capacity circular buffer of float64. Index 0 is the oldest
// element (head), index Len()-1 the newest (tail).
type Ring struct {
	buf  []float64
	head int
	tail int
}

// NewRing returns a Ring of capacity n filled with NaN.
func NewRing(n int) *Ring {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = math.NaN()
	}
	return &Ring{buf: buf}
}

// Update writes x over the oldest slot and advances the window. It returns
// the value that was evicted and x itself.
func (r *Ring) Update(x float64) (evicted, written float64) {
	evicted = r.buf[r.head]
	r.tail = r.head
	r.buf[r.tail] = x
	r.head = (r.head + 1) % len(r.buf)
	return evicted, x
}

// Head returns the oldest element in the window.
func (r *Ring) Head() float64 { return r.buf[r.head] }

// Tail returns the newest element in the window.
func (r *Ring) Tail() float64 { return r.buf[r.tail] }

// Get returns the i-th element, oldest first.
func (r *Ring) Get(i int) float64 { return r.buf[(r.head+i)%len(r.buf)] }

// Len returns the window capacity.
func (r *Ring) Len() int { return len(r.buf) }

// Each calls f over the window in oldest-to-newest order.
func (r *Ring) Each(f func(i int, v float64)) {
	for i := 0; i < len(r.buf); i++ {
		f(i, r.buf[(r.head+i)%len(r.buf)])
	}
}

// Sum is a rolling sum over the last N samples.
type Sum struct {
	ring     *Ring
	nanCount int
	sum      float64
}

// NewSum returns a rolling sum of window n.
func NewSum(n int) *Sum {
	return &Sum{ring: NewRing(n), nanCount: n}
}

// Update pushes x and returns the window sum, or NaN while any sample in the
// window is non-finite.
func (s *Sum) Update(x float64) float64 {
	old, _ := s.ring.Update(x)
	if isFinite(old) {
		s.sum -= old
	} else {
		s.nanCount--
	}
	if isFinite(x) {
		s.sum += x
	} else {
		s.nanCount++
	}
	if s.nanCount > 0 {
		return math.NaN()
	}
	return s.sum
}

// Mean is a rolling average that ignores non-finite samples in the window.
type Mean struct {
	ring     *Ring
	nanCount int
	sum      float64
}

// NewMean returns a rolling mean of window n.
func NewMean(n int) *Mean {
	return &Mean{ring: NewRing(n), nanCount: n}
}

// Update pushes x and returns the mean over the finite samples in the
// window. An all-NaN window yields NaN (0/0).
func (m *Mean) Update(x float64) float64 {
	old, _ := m.ring.Update(x)
	if isFinite(old) {
		m.sum -= old
	} else {
		m.nanCount--
	}
	if isFinite(x) {
		m.sum += x
	} else {
		m.nanCount++
	}
	return m.sum / float64(m.ring.Len()-m.nanCount)
}

// WeightedSum is the pointwise product of a fixed weight vector with the
// window, oldest sample against weights[0].
type WeightedSum struct {
	ring    *Ring
	weights []float64
}

// NewWeightedSum returns a weighted sum whose window length is len(weights).
func NewWeightedSum(weights []float64) *WeightedSum {
	return &WeightedSum{ring: NewRing(len(weights)), weights: weights}
}

// Update pushes x and returns Σ w_i · window_i under plain IEEE semantics.
func (w *WeightedSum) Update(x float64) float64 {
	w.ring.Update(x)
	var acc float64
	w.ring.Each(func(i int, v float64) {
		acc += w.weights[i] * v
	})
	return acc
}

// StDev is a rolling sample standard deviation built from two rolling sums.
type StDev struct {
	sum   *Sum
	sqSum *Sum
	n     int
}

// NewStDev returns a rolling standard deviation of window n.
func NewStDev(n int) *StDev {
	return &StDev{sum: NewSum(n), sqSum: NewSum(n), n: n}
}

// Update pushes x and returns √((Σx² − (Σx)²/N) / (N−1)), NaN until N finite
// samples have been observed. Cancellation can drive the numerator slightly
// negative; it is clamped to zero.
func (s *StDev) Update(x float64) float64 {
	sum := s.sum.Update(x)
	sqSum := s.sqSum.Update(x * x)
	if math.IsNaN(sum) || math.IsNaN(sqSum) {
		return math.NaN()
	}
	num := sqSum - sum*sum/float64(s.n)
	if num <= 0 {
		return 0
	}
	return math.Sqrt(num / float64(s.n-1))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
