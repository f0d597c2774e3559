// FILE: main.go
// Package main – Program entrypoint and HTTP/metrics server.
//
// Boot sequence:
//   1) loadEngineEnv()       – read .env (no shell exports required)
//   2) cfg := loadConfigFromEnv(), then flags override
//   3) LoadFees(cfg.FeesPath)
//   4) wire engine + one Aberration/tracker per configured symbol
//   5) start Prometheus /healthz server on cfg.MetricsPort
//   6) engine.Init(); signal handler → engine.Stop(); engine.Start()
//
// Flags:
//   -ticks <uri>      Tick endpoint (SUB side)
//   -orders <uri>     Order endpoint (PUSH side)
//   -workers <n>      Worker shard count
//   -fees <path>      TOML fee table
//   -symbols <list>   "rb2505=SHFE.rb,MA505=CZCE.MA"
//   -replay <csv>     Offline replay mode; no sockets (see replay.go)
//
// Example:
//   go run . -ticks tcp://127.0.0.1:5555 -orders tcp://127.0.0.1:5556 \
//            -workers 4 -fees fees.toml -symbols rb2505=SHFE.rb
//
// Exit codes: 0 on clean shutdown, non-zero on initialization failure.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	loadEngineEnv()
	cfg := loadConfigFromEnv()

	var replayCSV string
	flag.StringVar(&cfg.TickURI, "ticks", cfg.TickURI, "tick endpoint (SUB)")
	flag.StringVar(&cfg.OrderURI, "orders", cfg.OrderURI, "order endpoint (PUSH)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker shard count")
	flag.StringVar(&cfg.FeesPath, "fees", cfg.FeesPath, "TOML fee table path")
	flag.StringVar(&cfg.Symbols, "symbols", cfg.Symbols, "sym=contract.code list")
	flag.StringVar(&replayCSV, "replay", "", "CSV tick file: run offline replay instead of the live loop")
	flag.Parse()

	fees, err := LoadFees(cfg.FeesPath)
	if err != nil {
		log.Fatalf("fee table: %v", err)
	}
	symbols, err := ParseSymbols(cfg.Symbols)
	if err != nil {
		log.Fatalf("symbols: %v", err)
	}

	if replayCSV != "" {
		if err := runReplay(replayCSV, symbols, fees, cfg); err != nil {
			log.Fatalf("replay: %v", err)
		}
		return
	}

	engine, err := NewEngine(cfg.TickURI, cfg.OrderURI, cfg.Workers)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	for _, sc := range symbols {
		info, err := fees.Lookup(sc[1])
		if err != nil {
			log.Fatalf("symbol %s: %v", sc[0], err)
		}
		stg := NewAberration(cfg.AberrationWindow)
		perf := NewPerformanceTracker(cfg.InitCash, info)
		if err := engine.AddStrategy(SymbolFrom(sc[0]), stg, perf); err != nil {
			log.Fatalf("register %s: %v", sc[0], err)
		}
		log.Printf("[BOOT] %s ← %s (contract %s, multiplier %.1f)",
			sc[0], stg.Name(), sc[1], info.Multiplier)
	}

	// ---- HTTP metrics/health ----
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.MetricsPort), Handler: mux}
	go func() {
		log.Printf("serving metrics on :%d/metrics", cfg.MetricsPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	engine.Init()

	// Ctrl-C / SIGTERM → orderly shutdown at a message boundary.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		log.Printf("[ENGINE] signal %v", s)
		engine.Stop()
	}()

	log.Printf("[ENGINE] ticks=%s orders=%s workers=%d", cfg.TickURI, cfg.OrderURI, cfg.Workers)
	engine.Start()
	engine.Stop()
	_ = srv.Close()
}
