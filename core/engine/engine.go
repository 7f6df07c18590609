// Package engine drives one speech service connection: it multiplexes
// audio upload with the inbound message stream, tracks the turn
// lifecycle, and delivers typed events to the caller in receipt order.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/transport"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
)

type turnState int

const (
	stateIdle turnState = iota
	stateAwaitingTurnStart
	stateInTurn
)

func (s turnState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAwaitingTurnStart:
		return "awaiting turn start"
	case stateInTurn:
		return "in turn"
	}
	return "unknown"
}

// Engine owns one transport exclusively. Create one per session; an
// engine that reached a terminal error must be re-created, not reused.
type Engine struct {
	dial          transport.Dialer
	retry         RetryPolicy
	maxAudioFrame int
	eventBuffer   int

	mu   sync.Mutex
	cond *sync.Cond

	tr     transport.Transport
	enc    *wire.Encoder
	opened bool
	closed bool

	state       turnState
	turn        *TurnHandle
	lastInterim messages.Message

	termErr  error
	events   chan TurnEvent
	done     chan struct{}
	doneOnce sync.Once

	writeMu sync.Mutex
}

func New(opts ...Option) *Engine {
	e := &Engine{
		retry:         DefaultRetryPolicy(),
		maxAudioFrame: wire.DefaultMaxAudioFrameSize,
		eventBuffer:   64,
		done:          make(chan struct{}),
	}
	e.cond = sync.NewCond(&e.mu)
	for _, opt := range opts {
		opt(e)
	}
	e.events = make(chan TurnEvent, e.eventBuffer)
	return e
}

// Open dials the service and starts the inbound reader. The context
// governs the connection's lifetime, including reconnect dials.
func (e *Engine) Open(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.opened {
		e.mu.Unlock()
		return fmt.Errorf("engine already open")
	}
	if e.dial == nil {
		e.mu.Unlock()
		return fmt.Errorf("no dialer configured")
	}
	e.mu.Unlock()

	tr, err := e.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}

	e.mu.Lock()
	e.tr = tr
	e.enc = wire.NewEncoder(tr, e.maxAudioFrame)
	e.opened = true
	e.mu.Unlock()

	go e.readLoop(ctx)
	return nil
}

// Close shuts the engine down cleanly. Any in-flight turn is aborted
// first so the caller still gets its terminal event if the queue has
// room; either way NextEvent reports ErrClosed once the queue drains.
func (e *Engine) Close() error {
	// Release the queue before taking the mutex: a dispatch blocked on
	// a full queue holds the mutex, and it only unblocks via done.
	e.doneOnce.Do(func() { close(e.done) })

	e.mu.Lock()
	defer e.mu.Unlock()
	e.abortTurnLocked(ErrClosed)
	e.closeLocked(nil)
	return nil
}

// NextEvent blocks until the next event is available, the context is
// cancelled, or the engine is closed. Once the engine closes, queued
// events are still drained in order; after that NextEvent returns the
// terminal error, or ErrClosed for a clean shutdown.
func (e *Engine) NextEvent(ctx context.Context) (TurnEvent, error) {
	select {
	case ev := <-e.events:
		return ev, nil
	default:
	}

	select {
	case ev := <-e.events:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
		select {
		case ev := <-e.events:
			return ev, nil
		default:
		}
		return nil, e.terminalError()
	}
}

func (e *Engine) terminalError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.termErr != nil {
		return e.termErr
	}
	return ErrClosed
}

// dispatch hands an event to the caller-facing queue. A full queue
// blocks the reader, which is the backpressure the ordering guarantee
// depends on.
func (e *Engine) dispatch(ev TurnEvent) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

func (e *Engine) closeLocked(err error) {
	if e.closed {
		return
	}
	e.closed = true
	e.termErr = err
	if e.tr != nil {
		e.tr.Close()
	}
	e.doneOnce.Do(func() { close(e.done) })
	e.cond.Broadcast()
}

// abortTurnLocked ends the active turn with a TurnAborted event
// carrying the last interim result. No-op when no turn is active, which
// is what makes cancellation idempotent.
func (e *Engine) abortTurnLocked(reason error) {
	if e.turn == nil {
		return
	}

	var last messages.Message
	if e.lastInterim != nil {
		last = snapshotInterim(e.lastInterim)
	}
	e.dispatch(TurnAborted{Reason: reason, LastHypothesis: last})

	e.turn.end(reason)
	e.turn = nil
	e.lastInterim = nil
	e.state = stateIdle
	e.cond.Broadcast()
}
