package transport

import "net"

type pipe struct {
	net.Conn
}

// Pipe returns two connected in-memory transports. Writes on one side
// block until the other side reads, which makes it suitable for
// exercising backpressure in tests.
func Pipe() (Transport, Transport) {
	a, b := net.Pipe()
	return &pipe{a}, &pipe{b}
}
