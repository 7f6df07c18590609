package engine

import (
	"errors"
	"fmt"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
)

var (
	// ErrClosed is returned by NextEvent and the audio methods once the
	// engine has shut down cleanly.
	ErrClosed = errors.New("engine closed")

	// ErrTurnAlreadyActive is returned by StartTurn while another turn
	// is in flight. Turns are never queued.
	ErrTurnAlreadyActive = errors.New("a turn is already active")

	// ErrNoActiveTurn is returned by the audio methods outside a turn.
	ErrNoActiveTurn = errors.New("no active turn")

	// ErrTurnCancelled is the abort reason for caller-initiated
	// cancellation.
	ErrTurnCancelled = errors.New("turn cancelled")
)

// UnexpectedMessageError reports a protocol-sequence violation: a
// message kind that is not legal in the turn state it arrived in. The
// turn is aborted; the connection stays usable.
type UnexpectedMessageError struct {
	Kind  messages.Kind
	State string
}

func (e *UnexpectedMessageError) Error() string {
	return fmt.Sprintf("unexpected %s message while %s", e.Kind, e.State)
}

// TransportError wraps a transport failure or a service-reported error
// code. Permanent tells the caller whether the engine gave up without
// retrying (true) or after exhausting reconnect attempts (false).
type TransportError struct {
	Code      messages.ErrorCode
	Permanent bool
	Message   string
	Err       error
}

func (e *TransportError) Error() string {
	class := "transient"
	if e.Permanent {
		class = "permanent"
	}
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s transport error (%s): %s", class, e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s transport error (%s): %v", class, e.Code, e.Err)
	default:
		return fmt.Sprintf("%s transport error (%s)", class, e.Code)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }
