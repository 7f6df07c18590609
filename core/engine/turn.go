package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// contextPath is the upstream path the turn configuration is sent on;
// the service acknowledges it with turn.start.
const contextPath = "speech.context"

// TurnConfig describes one streaming exchange. Correlation-tag
// semantics beyond opaqueness are service policy, not engine contract.
type TurnConfig struct {
	SourceLanguage  string   `json:"from,omitempty"`
	TargetLanguages []string `json:"to,omitempty"`
	Voice           string   `json:"voice,omitempty"`
}

// TurnHandle identifies one turn for the audio and cancel calls.
type TurnHandle struct {
	id   string
	span trace.Span

	// guarded by the engine mutex
	ended  bool
	reason error
}

// RequestID is the correlation identifier stamped on every frame of
// the turn.
func (h *TurnHandle) RequestID() string { return h.id }

func (h *TurnHandle) end(reason error) {
	if h.ended {
		return
	}
	h.ended = true
	h.reason = reason
	if h.span != nil {
		if reason != nil {
			h.span.SetStatus(codes.Error, reason.Error())
		} else {
			h.span.SetStatus(codes.Ok, "")
		}
		h.span.End()
	}
}

func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StartTurn sends the turn configuration upstream and moves the engine
// into the awaiting-acknowledgement state. Audio pushed before the
// service answers with turn.start blocks until it does. Only one turn
// may be active; a second request fails rather than queuing.
func (e *Engine) StartTurn(ctx context.Context, cfg TurnConfig) (*TurnHandle, error) {
	e.mu.Lock()
	if e.closed || !e.opened {
		e.mu.Unlock()
		return nil, ErrClosed
	}
	if e.state != stateIdle {
		e.mu.Unlock()
		return nil, ErrTurnAlreadyActive
	}

	h := &TurnHandle{id: newRequestID()}
	_, h.span = tracer.Start(ctx, "speech.turn",
		trace.WithAttributes(attribute.String("speech.request_id", h.id)))
	e.state = stateAwaitingTurnStart
	e.turn = h
	e.mu.Unlock()

	turnCounter.Add(ctx, 1)

	body, err := json.Marshal(cfg)
	if err == nil {
		err = e.writeFrame(&wire.Frame{
			Path:        contextPath,
			ContentType: wire.ContentTypeJSON,
			RequestID:   h.id,
			StreamID:    -1,
			Body:        body,
		})
	}
	if err != nil {
		e.mu.Lock()
		if e.turn == h {
			h.end(err)
			e.turn = nil
			e.state = stateIdle
			e.cond.Broadcast()
		}
		e.mu.Unlock()
		return nil, fmt.Errorf("failed to start turn: %w", err)
	}
	return h, nil
}

// CancelTurn aborts h. Cancelling a turn that already ended, was
// already cancelled, or belongs to an earlier connection is a no-op, so
// calling it twice produces exactly one TurnAborted event.
func (e *Engine) CancelTurn(h *TurnHandle) error {
	if h == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.turn != h || h.ended {
		return nil
	}
	e.abortTurnLocked(ErrTurnCancelled)
	return nil
}

// handleMessage runs the turn state machine for one inbound message.
// Only the reader goroutine calls it. It returns the action the read
// loop should take next.
func (e *Engine) handleMessage(msg messages.Message, frame *wire.Frame) readerAction {
	e.mu.Lock()
	defer e.mu.Unlock()

	if svcErr, ok := msg.(messages.ServiceError); ok {
		return e.handleServiceErrorLocked(svcErr)
	}

	switch e.state {
	case stateIdle:
		// Covers messages trailing a finished turn as well as anything
		// the service sends outside one.
		logger.Warn("discarding message received outside a turn",
			"kind", string(msg.Kind()), "requestID", frame.RequestID)
		return actionContinue

	case stateAwaitingTurnStart:
		start, ok := msg.(messages.TurnStart)
		if !ok {
			e.abortTurnLocked(&UnexpectedMessageError{Kind: msg.Kind(), State: e.state.String()})
			return actionContinue
		}
		if frame.RequestID != "" && frame.RequestID != e.turn.id {
			logger.Warn("discarding turn.start with stale correlation",
				"requestID", frame.RequestID, "want", e.turn.id)
			return actionContinue
		}
		e.state = stateInTurn
		if e.turn.span != nil {
			e.turn.span.AddEvent("turn.start",
				trace.WithAttributes(attribute.String("speech.service_tag", start.Tag)))
		}
		e.dispatch(start)
		e.cond.Broadcast()
		return actionContinue

	case stateInTurn:
		if frame.RequestID != "" && frame.RequestID != e.turn.id {
			logger.Warn("discarding message with stale correlation",
				"kind", string(msg.Kind()), "requestID", frame.RequestID)
			return actionContinue
		}

		switch m := msg.(type) {
		case messages.TurnStart:
			e.abortTurnLocked(&UnexpectedMessageError{Kind: m.Kind(), State: e.state.String()})
			return actionContinue
		case messages.TurnEnd:
			e.dispatch(m)
			e.turn.end(nil)
			e.turn = nil
			e.lastInterim = nil
			e.state = stateIdle
			e.cond.Broadcast()
			return actionContinue
		case messages.SpeechHypothesis:
			e.lastInterim = m
		case messages.SpeechFragment:
			e.lastInterim = m
		case messages.TranslationHypothesis:
			e.lastInterim = m
		}
		e.dispatch(msg)
		return actionContinue
	}
	return actionContinue
}

func (e *Engine) handleServiceErrorLocked(svcErr messages.ServiceError) readerAction {
	terr := &TransportError{
		Code:      svcErr.Code,
		Permanent: Classify(svcErr.Code) == Permanent,
		Message:   svcErr.Message,
	}
	e.abortTurnLocked(terr)
	if terr.Permanent {
		e.closeLocked(terr)
		return actionStop
	}
	// Transient: drop the connection and let the read loop redial,
	// honoring the server-suggested minimum backoff when present.
	if e.tr != nil {
		e.tr.Close()
	}
	return readerAction{kind: actionReconnectKind, minBackoff: svcErr.RetryAfter}
}
