// Package transport abstracts the duplex byte stream the engine runs
// over. The engine owns a transport exclusively; TLS and handshake
// mechanics live below this boundary.
package transport

import (
	"context"
	"io"
)

// Transport is a duplex byte stream. Read and Write may block; Close
// unblocks both.
type Transport interface {
	io.Reader
	io.Writer
	Close() error
}

// Dialer opens a fresh transport. The engine calls it on open and again
// on every reconnect attempt.
type Dialer func(ctx context.Context) (Transport, error)
