// FILE: config.go
// Package main – Runtime configuration model and loader.
//
// Every field below is read from the environment (hydrated from .env by
// loadEngineEnv(), see env.go); the CLI flags (endpoints, worker count,
// fee-table path, symbol set) then override the env values.
//
// Typical flow (see main.go):
//   loadEngineEnv()
//   cfg := loadConfigFromEnv()
//   flag overrides → cfg

package main

import (
	"fmt"
	"strings"
)

// Config holds all runtime knobs for the engine.
type Config struct {
	// Transport
	TickURI  string // e.g. tcp://127.0.0.1:5555 or ipc://@hq
	OrderURI string // e.g. tcp://127.0.0.1:5556
	Workers  int

	// Instruments: "rb2505=SHFE.rb,MA505=CZCE.MA" (tick symbol = fee code)
	Symbols  string
	FeesPath string

	// Simulation
	InitCash         float64
	AberrationWindow int

	// Ops
	MetricsPort int
}

// loadConfigFromEnv reads the process env (already hydrated by
// loadEngineEnv()) and returns a Config with sane defaults.
func loadConfigFromEnv() Config {
	return Config{
		TickURI:          getEnv("TICK_URI", "tcp://127.0.0.1:5555"),
		OrderURI:         getEnv("ORDER_URI", "tcp://127.0.0.1:5556"),
		Workers:          getEnvInt("WORKERS", 3),
		Symbols:          getEnv("SYMBOLS", ""),
		FeesPath:         getEnv("FEES_PATH", "fees.toml"),
		InitCash:         getEnvFloat("INIT_CASH", 1_000_000),
		AberrationWindow: getEnvInt("ABERRATION_WINDOW", 20),
		MetricsPort:      getEnvInt("METRICS_PORT", 8080),
	}
}

// ParseSymbols splits "tickSym=feeCode,..." into an ordered mapping.
func ParseSymbols(s string) ([][2]string, error) {
	var out [][2]string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sym, code, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("bad symbol mapping %q (want sym=contract.code)", part)
		}
		out = append(out, [2]string{strings.TrimSpace(sym), strings.TrimSpace(code)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no symbols configured")
	}
	return out, nil
}
