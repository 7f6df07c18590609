package engine

import (
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
)

// PushAudio sends one caller buffer upstream, split into frames no
// larger than the configured maximum. It blocks while the turn is still
// awaiting its turn.start acknowledgement and while the transport
// applies backpressure; nothing is buffered beyond the frame in flight.
func (e *Engine) PushAudio(p []byte) error {
	id, err := e.awaitActiveTurn()
	if err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.enc.WriteAudio(id, p)
}

// EndAudio terminates the upstream audio for the active turn with the
// zero-length frame the service distinguishes from a regular chunk.
func (e *Engine) EndAudio() error {
	id, err := e.awaitActiveTurn()
	if err != nil {
		return err
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.enc.WriteAudioEnd(id)
}

// awaitActiveTurn blocks until the service acknowledged the turn,
// returning the turn's correlation id. The engine sends no audio
// upstream before the acknowledgement.
func (e *Engine) awaitActiveTurn() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.state == stateAwaitingTurnStart && !e.closed {
		e.cond.Wait()
	}
	if e.closed {
		if e.termErr != nil {
			return "", e.termErr
		}
		return "", ErrClosed
	}
	if e.state != stateInTurn || e.turn == nil {
		return "", ErrNoActiveTurn
	}
	return e.turn.id, nil
}

// writeFrame serializes one frame through the writer path.
func (e *Engine) writeFrame(f *wire.Frame) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	return e.enc.WriteFrame(f)
}
