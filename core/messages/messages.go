// Package messages defines the typed model for every message the speech
// service sends during a turn. Values are immutable once constructed;
// the engine hands them to the caller as events and the caller must not
// mutate them.
package messages

import "time"

// Offset and Duration are engine-relative time in 100ns ticks, monotonic
// within a turn.
type (
	Offset   uint64
	Duration uint64
)

// Kind discriminates message variants. Wire-borne kinds match their
// service path; KindTurnAborted is produced locally by the engine.
type Kind string

const (
	KindTurnStart             Kind = "turn.start"
	KindTurnEnd               Kind = "turn.end"
	KindSpeechStartDetected   Kind = "speech.startDetected"
	KindSpeechEndDetected     Kind = "speech.endDetected"
	KindSpeechHypothesis      Kind = "speech.hypothesis"
	KindSpeechFragment        Kind = "speech.fragment"
	KindSpeechPhrase          Kind = "speech.phrase"
	KindTranslationHypothesis Kind = "translation.hypothesis"
	KindTranslationPhrase     Kind = "translation.phrase"
	KindAudioOutputChunk      Kind = "translation.synthesis"
	KindServiceError          Kind = "error"
	KindUser                  Kind = "user"

	KindTurnAborted Kind = "turn.aborted"
)

// Message is the common capability all turn content shares, letting the
// turn state machine dispatch uniformly over the variants.
type Message interface {
	Kind() Kind
}

// TurnStart opens a turn. Tag is the opaque correlation identifier
// linking the turn to server-side context.
type TurnStart struct {
	JSON string
	Tag  string
}

func (TurnStart) Kind() Kind { return KindTurnStart }

// TurnEnd closes a turn. Its body is empty on the wire.
type TurnEnd struct{}

func (TurnEnd) Kind() Kind { return KindTurnEnd }

// SpeechStartDetected marks the start of voice activity.
type SpeechStartDetected struct {
	JSON   string
	Offset Offset
}

func (SpeechStartDetected) Kind() Kind { return KindSpeechStartDetected }

// SpeechEndDetected marks the end of voice activity.
type SpeechEndDetected struct {
	JSON   string
	Offset Offset
}

func (SpeechEndDetected) Kind() Kind { return KindSpeechEndDetected }

// SpeechHypothesis is an interim recognition result, subject to
// revision until a phrase arrives.
type SpeechHypothesis struct {
	JSON     string
	Offset   Offset
	Duration Duration
	Text     string
}

func (SpeechHypothesis) Kind() Kind { return KindSpeechHypothesis }

// SpeechFragment is an interim dictation-mode result. Unlike a
// hypothesis, fragments are append-only and not revised.
type SpeechFragment struct {
	JSON     string
	Offset   Offset
	Duration Duration
	Text     string
}

func (SpeechFragment) Kind() Kind { return KindSpeechFragment }

// SpeechPhrase is the final recognition result for a turn segment.
// DisplayText is meaningful only when Status is RecognitionSuccess;
// an empty DisplayText with Success status is valid (empty recognition).
type SpeechPhrase struct {
	JSON        string
	Offset      Offset
	Duration    Duration
	Status      RecognitionStatus
	DisplayText string
}

func (SpeechPhrase) Kind() Kind { return KindSpeechPhrase }

// TranslationResult carries translations keyed by target language.
// Translations is non-empty only when Status is TranslationSuccess.
type TranslationResult struct {
	Status        TranslationStatus
	FailureReason string
	Translations  map[string]string
}

// TranslationHypothesis is an interim translation result.
type TranslationHypothesis struct {
	JSON        string
	Offset      Offset
	Duration    Duration
	Text        string
	Translation TranslationResult
}

func (TranslationHypothesis) Kind() Kind { return KindTranslationHypothesis }

// TranslationPhrase is the final translation result for a turn segment.
// Status is authoritative over the embedded translation's status.
type TranslationPhrase struct {
	JSON        string
	Offset      Offset
	Duration    Duration
	Text        string
	Translation TranslationResult
	Status      RecognitionStatus
}

func (TranslationPhrase) Kind() Kind { return KindTranslationPhrase }

// AudioOutputChunk is a fragment of synthesized audio. Data is owned by
// the receiver of the event; the engine never reuses it.
type AudioOutputChunk struct {
	StreamID int
	Data     []byte
}

func (AudioOutputChunk) Kind() Kind { return KindAudioOutputChunk }

// UserMessage carries a message on a path the engine does not know.
// The body is opaque; Path determines caller routing.
type UserMessage struct {
	Path        string
	ContentType string
	Body        []byte
}

func (UserMessage) Kind() Kind { return KindUser }

// ServiceError is a failure reported by the service on the error path.
// RetryAfter, when non-zero, is the server-suggested minimum backoff.
type ServiceError struct {
	JSON       string
	Code       ErrorCode
	Message    string
	RetryAfter time.Duration
}

func (ServiceError) Kind() Kind { return KindServiceError }
