package engine

import (
	"context"
	"errors"
	"time"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/transport"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
)

type readerActionKind int

const (
	actionContinueKind readerActionKind = iota
	actionReconnectKind
	actionStopKind
)

type readerAction struct {
	kind       readerActionKind
	minBackoff time.Duration
}

var (
	actionContinue = readerAction{kind: actionContinueKind}
	actionStop     = readerAction{kind: actionStopKind}
)

// readLoop is the single inbound task: it decodes frames, runs the turn
// state machine, and owns reconnection. Turn state is mutated from here
// and from caller-facing methods, both under the engine mutex.
func (e *Engine) readLoop(ctx context.Context) {
	e.mu.Lock()
	tr := e.tr
	e.mu.Unlock()
	dec := wire.NewDecoder(tr)

	for {
		frame, err := dec.Next()
		if err != nil {
			action := e.handleReadError(err)
			if action.kind == actionStopKind {
				return
			}
			if !e.reconnect(ctx, action.minBackoff) {
				return
			}
			e.mu.Lock()
			tr = e.tr
			e.mu.Unlock()
			dec = wire.NewDecoder(tr)
			continue
		}

		msg, err := messages.FromFrame(frame)
		if err != nil {
			// The frame itself was well formed, so only the turn is
			// poisoned, not the connection.
			e.mu.Lock()
			e.abortTurnLocked(err)
			e.mu.Unlock()
			logger.Warn("dropping undecodable message", "path", frame.Path, "error", err)
			continue
		}

		action := e.handleMessage(msg, frame)
		switch action.kind {
		case actionStopKind:
			return
		case actionReconnectKind:
			if !e.reconnect(ctx, action.minBackoff) {
				return
			}
			e.mu.Lock()
			tr = e.tr
			e.mu.Unlock()
			dec = wire.NewDecoder(tr)
		}
	}
}

func (e *Engine) handleReadError(err error) readerAction {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return actionStop
	}

	var parseErr *wire.ParseError
	if errors.As(err, &parseErr) {
		// Frame desynchronization is not locally recoverable; the
		// connection is unusable.
		e.abortTurnLocked(parseErr)
		e.closeLocked(parseErr)
		return actionStop
	}

	terr := &TransportError{Code: messages.ErrorConnection, Err: err}
	e.abortTurnLocked(terr)
	return readerAction{kind: actionReconnectKind}
}

// reconnect redials with backoff up to the policy's retry budget and
// swaps the transport in. It returns false once the engine reached a
// terminal state, in which case the read loop must exit.
func (e *Engine) reconnect(ctx context.Context, minBackoff time.Duration) bool {
	var lastErr error
	for attempt := 0; attempt < e.retry.MaxRetries; attempt++ {
		delay := e.retry.Backoff(attempt, minBackoff)
		minBackoff = 0

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			e.closeWithErr(&TransportError{Code: messages.ErrorConnection, Err: ctx.Err()})
			return false
		case <-e.done:
			return false
		}

		tr, err := e.dial(ctx)
		if err != nil {
			lastErr = err
			logger.Warn("reconnect attempt failed", "attempt", attempt+1, "error", err)
			continue
		}

		reconnectCounter.Add(ctx, 1)
		e.swapTransport(tr)
		return true
	}

	e.closeWithErr(&TransportError{Code: messages.ErrorConnection, Err: lastErr})
	return false
}

// swapTransport replaces the connection atomically with respect to the
// writer path: nobody observes a half-swapped transport.
func (e *Engine) swapTransport(tr transport.Transport) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		tr.Close()
		return
	}
	if e.tr != nil {
		e.tr.Close()
	}
	e.tr = tr
	e.enc = wire.NewEncoder(tr, e.maxAudioFrame)
}

func (e *Engine) closeWithErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked(err)
}
