// FILE: metrics.go
// Package main – Prometheus metrics for observability.
//
// Exposes the metrics the engine updates during operation:
//   • cta_ticks_total{worker}             – ticks processed per shard
//   • cta_orders_total{strategy,side}     – orders emitted on the wire
//   • cta_bad_frames_total                – wrong-size frames dropped
//   • cta_equity{symbol,strategy}         – latest equity per tracker (gauge)
//
// These are registered in init() and served by the HTTP handler started in
// main.go at /metrics (Prometheus text exposition format).

package main

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cta_ticks_total",
			Help: "Ticks processed, per worker shard",
		},
		[]string{"worker"},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cta_orders_total",
			Help: "Orders emitted on the order endpoint",
		},
		[]string{"strategy", "side"},
	)

	mtxBadFrames = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cta_bad_frames_total",
			Help: "Frames dropped because their size did not match the tick record",
		},
	)

	mtxEquity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cta_equity",
			Help: "Latest equity per (symbol, strategy) tracker",
		},
		[]string{"symbol", "strategy"},
	)
)

func init() {
	prometheus.MustRegister(mtxTicks, mtxOrders, mtxBadFrames, mtxEquity)
}
