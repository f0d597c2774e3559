// FILE: engine.go
// Package main – Sharded tick dispatcher.
//
// Data flow:
//   SUB socket → Start() decodes one framed tick per iteration → shard
//   selected by Symbol.ShardKey() mod W → per-shard channel → worker
//   goroutine invokes every strategy bound to the symbol → each order is
//   (i) simulated into that strategy's tracker, (ii) framed and pushed on
//   the worker's own PUSH socket.
//
// Ownership: AddStrategy is only legal before Init. Init drains the
// engine-wide symbol→strategies map into per-worker maps, so after start-up
// no state is shared between threads and the hot path takes no locks. The
// engine owns the SUB socket; each worker creates and owns its PUSH socket.
//
// Shutdown: Stop() closes the SUB socket (unblocking Start), waits for the
// receive loop to drain, closes every shard channel (each worker exits when
// its channel is empty), and joins the workers. Stop is idempotent.

package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-zeromq/zmq4"
	"golang.org/x/sync/errgroup"
)

// Engine lifecycle states.
const (
	stateConfigured int32 = iota
	stateRunning
	stateStopped
)

// slot pairs a strategy with its performance tracker.
type slot struct {
	stg  Strategy
	perf *PerformanceTracker
}

// Engine routes ticks from a SUB endpoint to per-shard workers and emits
// orders on a PUSH endpoint.
type Engine struct {
	ctx       context.Context
	cancel    context.CancelFunc
	subCancel context.CancelFunc

	numWorkers int
	orderURI   string
	queueDepth int

	sub     zmq4.Socket
	senders []chan TickData
	grp     *errgroup.Group

	stgMap  map[Symbol][]slot
	batches []map[Symbol]struct{}

	state     atomic.Int32
	stopOnce  sync.Once
	started   atomic.Bool
	startDone chan struct{}
}

// NewEngine connects a SUB socket to tickURI and prepares numWorkers empty
// shards. No workers are started until Init.
func NewEngine(tickURI, orderURI string, numWorkers int) (*Engine, error) {
	if numWorkers < 1 {
		return nil, fmt.Errorf("numWorkers must be >= 1, got %d", numWorkers)
	}
	ctx, cancel := context.WithCancel(context.Background())
	subCtx, subCancel := context.WithCancel(ctx)

	sub := zmq4.NewSub(subCtx, zmq4.WithAutomaticReconnect(true))
	if err := sub.Dial(tickURI); err != nil {
		subCancel()
		cancel()
		return nil, fmt.Errorf("connect SUB to %s: %w", tickURI, err)
	}

	e := &Engine{
		ctx:        ctx,
		cancel:     cancel,
		subCancel:  subCancel,
		numWorkers: numWorkers,
		orderURI:   orderURI,
		queueDepth: 1024,
		sub:        sub,
		stgMap:     make(map[Symbol][]slot),
		batches:    make([]map[Symbol]struct{}, numWorkers),
		startDone:  make(chan struct{}),
	}
	for i := range e.batches {
		e.batches[i] = make(map[Symbol]struct{})
	}
	return e, nil
}

// AddStrategy binds a strategy and its tracker to a symbol. The first
// registration for a symbol also subscribes the SUB socket to the symbol's
// 16-byte topic prefix. Registration after Init is rejected.
func (e *Engine) AddStrategy(symbol Symbol, stg Strategy, perf *PerformanceTracker) error {
	if e.state.Load() != stateConfigured {
		return fmt.Errorf("add strategy %s: engine already initialized", stg.Name())
	}
	if _, seen := e.stgMap[symbol]; !seen {
		if err := e.sub.SetOption(zmq4.OptionSubscribe, string(symbol[:])); err != nil {
			return fmt.Errorf("subscribe %s: %w", symbol, err)
		}
	}
	e.stgMap[symbol] = append(e.stgMap[symbol], slot{stg: stg, perf: perf})

	worker := int(symbol.ShardKey()) % e.numWorkers
	e.batches[worker][symbol] = struct{}{}
	return nil
}

// Init moves the engine from Configured to Running: every shard gets its
// exclusive strategy map, its tick channel, and its worker goroutine. The
// engine-wide map is empty afterwards. A second Init is a logged no-op.
func (e *Engine) Init() {
	if !e.state.CompareAndSwap(stateConfigured, stateRunning) {
		log.Printf("[ENGINE] Init called twice; ignoring")
		return
	}
	e.grp = &errgroup.Group{}
	e.senders = make([]chan TickData, e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		partial := make(map[Symbol][]slot, len(e.batches[i]))
		for sym := range e.batches[i] {
			if slots, ok := e.stgMap[sym]; ok {
				partial[sym] = slots
				delete(e.stgMap, sym)
			}
		}
		ch := make(chan TickData, e.queueDepth)
		e.senders[i] = ch

		workerID := i
		e.grp.Go(func() error {
			return e.runWorker(workerID, partial, ch)
		})
	}
}

// runWorker is one shard's loop: consume ticks until the channel closes.
func (e *Engine) runWorker(id int, partial map[Symbol][]slot, ticks <-chan TickData) error {
	pusher := zmq4.NewPush(e.ctx, zmq4.WithAutomaticReconnect(true))
	if err := pusher.Dial(e.orderURI); err != nil {
		return fmt.Errorf("worker %d: connect PUSH to %s: %w", id, e.orderURI, err)
	}
	defer pusher.Close()

	for tick := range ticks {
		slots, ok := partial[tick.Symbol]
		if !ok {
			continue
		}
		mtxTicks.WithLabelValues(fmt.Sprint(id)).Inc()
		for i := range slots {
			order, fired := slots[i].stg.OnTick(&tick)
			if !fired {
				continue
			}
			slots[i].perf.OnFill(&order, &tick)
			if err := pusher.Send(zmq4.NewMsg(EncodeOrder(&order))); err != nil {
				log.Printf("[WORKER %d] push order: %v", id, err)
				continue
			}
			mtxOrders.WithLabelValues(order.StgName.String(), order.Direction.String()).Inc()
		}
		for i := range slots {
			slots[i].perf.OnTickEnd(&tick)
			mtxEquity.WithLabelValues(tick.Symbol.String(), slots[i].stg.Name().String()).
				Set(slots[i].perf.Equity())
		}
	}

	log.Printf("[WORKER %d] exiting", id)
	return nil
}

// Start blocks on the SUB socket, routing one framed tick per iteration.
// It returns when Stop closes the socket or the transport fails terminally.
func (e *Engine) Start() {
	e.started.Store(true)
	defer close(e.startDone)

	var tick TickData
	for {
		msg, err := e.sub.Recv()
		if err != nil {
			// Stop() dropped the socket, or the peer is gone for good.
			log.Printf("[ENGINE] SUB receive: %v; leaving main loop", err)
			return
		}
		if len(msg.Frames) == 0 {
			continue
		}
		frame := msg.Frames[0]
		if len(frame) != TickDataSize {
			log.Printf("[ENGINE] dropping %d-byte frame (want %d)", len(frame), TickDataSize)
			mtxBadFrames.Inc()
			continue
		}
		DecodeTick(frame, &tick)
		worker := int(tick.Symbol.ShardKey()) % e.numWorkers
		e.senders[worker] <- tick
	}
}

// Stop transitions Running → Stopped: unblock Start, close every shard
// channel, and join the workers. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		log.Printf("[ENGINE] stopping")
		e.state.Store(stateStopped)

		// Drop the SUB socket first so the main loop stops feeding shards,
		// then close the channels; each worker drains and exits on its own.
		e.subCancel()
		if err := e.sub.Close(); err != nil {
			log.Printf("[ENGINE] close SUB: %v", err)
		}
		if e.started.Load() {
			<-e.startDone
		}
		for _, ch := range e.senders {
			close(ch)
		}
		if e.grp != nil {
			if err := e.grp.Wait(); err != nil {
				log.Printf("[ENGINE] worker error: %v", err)
			}
		}
		e.cancel()
		log.Printf("[ENGINE] all workers exited")
	})
}
