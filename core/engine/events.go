package engine

import (
	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
	"github.com/jinzhu/copier"
)

// TurnEvent is what NextEvent hands to the caller: either a decoded
// service message or an engine-produced lifecycle event. Events arrive
// in exact receipt order and are immutable once dispatched.
type TurnEvent interface {
	Kind() messages.Kind
}

// TurnAborted terminates a turn that did not reach turn.end: a
// cancellation, a protocol violation, or a transport failure. It
// carries the best-known partial result so partial recognition is never
// silently dropped.
type TurnAborted struct {
	Reason error

	// LastHypothesis is the most recent interim result received before
	// the abort (a SpeechHypothesis, SpeechFragment or
	// TranslationHypothesis), or nil when none arrived.
	LastHypothesis messages.Message
}

func (TurnAborted) Kind() messages.Kind { return messages.KindTurnAborted }

// snapshotInterim deep-copies an interim result so the aborted turn's
// event cannot alias state the caller might hold from the original
// dispatch. Only the translation variants carry reference fields.
func snapshotInterim(m messages.Message) messages.Message {
	switch v := m.(type) {
	case messages.TranslationHypothesis:
		var c messages.TranslationHypothesis
		if err := copier.CopyWithOption(&c, &v, copier.Option{DeepCopy: true}); err != nil {
			return v
		}
		return c
	case messages.TranslationPhrase:
		var c messages.TranslationPhrase
		if err := copier.CopyWithOption(&c, &v, copier.Option{DeepCopy: true}); err != nil {
			return v
		}
		return c
	default:
		return m
	}
}
