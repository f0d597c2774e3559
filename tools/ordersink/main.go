// Pull and pretty-print order frames emitted by the engine.
//
// Usage:
//   go run ./tools/ordersink -bind tcp://127.0.0.1:5556
//
// Each message is one 64-byte order record. Standalone on purpose: it speaks
// the wire format, not the engine's types.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"log"
	"strings"

	"github.com/go-zeromq/zmq4"
)

const orderSize = 64

var directions = []string{"NONE", "BUY", "SELL"}
var offsets = []string{"NONE", "OPEN", "CLOSE"}

func cstr(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func name(table []string, v byte) string {
	if int(v) < len(table) {
		return table[v]
	}
	return "?"
}

func main() {
	var bind string
	flag.StringVar(&bind, "bind", "tcp://127.0.0.1:5556", "PULL bind endpoint")
	flag.Parse()

	pull := zmq4.NewPull(context.Background())
	if err := pull.Listen(bind); err != nil {
		log.Fatalf("bind %s: %v", bind, err)
	}
	defer pull.Close()
	log.Printf("pulling orders on %s", bind)

	for {
		msg, err := pull.Recv()
		if err != nil {
			log.Fatalf("recv: %v", err)
		}
		b := msg.Frames[0]
		if len(b) != orderSize {
			log.Printf("dropping %d-byte frame (want %d)", len(b), orderSize)
			continue
		}
		log.Printf("%-16s %-10s stamp=%d lots=%d %s %s",
			cstr(b[0:32]), cstr(b[32:48]),
			int64(binary.LittleEndian.Uint64(b[48:])),
			binary.LittleEndian.Uint32(b[56:]),
			name(directions, b[60]), name(offsets, b[61]))
	}
}
