// Publish synthetic framed ticks for a symbol list, for manual engine runs.
//
// Usage:
//   go run ./tools/ticksim -bind tcp://127.0.0.1:5555 -symbols rb2505,MA505 \
//     -interval 100ms -n 1000
//
// Each message is one 272-byte tick record (the engine's framing unit) whose
// last/bid/ask walk randomly around a per-symbol base price. This tool is
// standalone on purpose: it speaks the wire format, not the engine's types.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/go-zeromq/zmq4"
)

const tickSize = 272

func encodeTick(buf []byte, symbol string, stamp int64, last, ask, bid float64) {
	for i := range buf {
		buf[i] = 0
	}
	copy(buf[0:16], symbol)
	binary.LittleEndian.PutUint64(buf[16:], uint64(stamp))
	put := func(off int, v float64) {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
	}
	put(48, last)  // last is the 4th double after the stamp
	put(144, ask)  // ap1
	put(184, bid)  // bp1
	binary.LittleEndian.PutUint32(buf[224:], 1) // av1
	binary.LittleEndian.PutUint32(buf[244:], 1) // bv1
}

func main() {
	var bind, symbols string
	var interval time.Duration
	var n int
	flag.StringVar(&bind, "bind", "tcp://127.0.0.1:5555", "PUB bind endpoint")
	flag.StringVar(&symbols, "symbols", "rb2505", "comma-separated symbol list")
	flag.DurationVar(&interval, "interval", 100*time.Millisecond, "delay between ticks")
	flag.IntVar(&n, "n", 0, "tick count per symbol (0 = forever)")
	flag.Parse()

	pub := zmq4.NewPub(context.Background())
	if err := pub.Listen(bind); err != nil {
		log.Fatalf("bind %s: %v", bind, err)
	}
	defer pub.Close()
	log.Printf("publishing on %s", bind)

	syms := strings.Split(symbols, ",")
	base := make([]float64, len(syms))
	for i := range base {
		base[i] = 3000 + rand.Float64()*2000
	}

	for i := 0; n == 0 || i < n; i++ {
		for j, sym := range syms {
			base[j] += rand.NormFloat64() * 2
			last := base[j]
			// fresh buffer per message: Send may hand the slice off asynchronously
			buf := make([]byte, tickSize)
			encodeTick(buf, sym, time.Now().UnixNano(), last, last+1, last-1)
			if err := pub.Send(zmq4.NewMsg(buf)); err != nil {
				log.Fatalf("send: %v", err)
			}
		}
		time.Sleep(interval)
	}
}
