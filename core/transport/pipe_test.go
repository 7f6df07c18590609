package transport

import (
	"bytes"
	"testing"
)

func TestPipeIsDuplex(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	defer b.Close()

	go func() {
		a.Write([]byte("ping"))
	}()
	buf := make([]byte, 4)
	if _, err := b.Read(buf); err != nil {
		t.Fatalf("expected read to succeed, got %v", err)
	}
	if !bytes.Equal(buf, []byte("ping")) {
		t.Fatalf("expected ping, got %q", buf)
	}

	go func() {
		b.Write([]byte("pong"))
	}()
	if _, err := a.Read(buf); err != nil {
		t.Fatalf("expected read to succeed, got %v", err)
	}
	if !bytes.Equal(buf, []byte("pong")) {
		t.Fatalf("expected pong, got %q", buf)
	}
}

func TestPipeCloseUnblocksReader(t *testing.T) {
	a, b := Pipe()
	defer b.Close()

	done := make(chan error, 1)
	go func() {
		_, err := b.Read(make([]byte, 1))
		done <- err
	}()

	a.Close()
	if err := <-done; err == nil {
		t.Fatalf("expected the blocked read to fail after close")
	}
}
