package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocket wraps a websocket connection into a byte stream. Outgoing
// writes become binary websocket messages; incoming messages of either
// type are exposed as a contiguous byte stream.
type WebSocket struct {
	conn *websocket.Conn

	readMu  sync.Mutex
	current io.Reader

	writeMu sync.Mutex
}

// DialWebSocket returns a Dialer for url with the given headers
// (typically the service subscription key).
func DialWebSocket(url string, header http.Header) Dialer {
	return func(ctx context.Context) (Transport, error) {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
		if err != nil {
			return nil, fmt.Errorf("failed to open socket connection to %s: %w", url, err)
		}
		return &WebSocket{conn: conn}, nil
	}
}

func (t *WebSocket) Read(p []byte) (int, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	for {
		if t.current == nil {
			_, r, err := t.conn.NextReader()
			if err != nil {
				return 0, err
			}
			t.current = r
		}
		n, err := t.current.Read(p)
		if err == io.EOF {
			t.current = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (t *WebSocket) Write(p []byte) (int, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	if err := t.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *WebSocket) Close() error {
	return t.conn.Close()
}
