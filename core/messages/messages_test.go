package messages

import (
	"errors"
	"testing"
	"time"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
)

func jsonFrame(path, body string) *wire.Frame {
	return &wire.Frame{
		Path:        path,
		ContentType: wire.ContentTypeJSON,
		RequestID:   "req1",
		StreamID:    -1,
		Body:        []byte(body),
	}
}

func TestFromFrameTurnLifecycle(t *testing.T) {
	msg, err := FromFrame(jsonFrame("turn.start", `{"context":{"serviceTag":"tag42"}}`))
	if err != nil {
		t.Fatalf("expected turn.start to decode, got %v", err)
	}
	start, ok := msg.(TurnStart)
	if !ok {
		t.Fatalf("expected TurnStart, got %T", msg)
	}
	if start.Tag != "tag42" {
		t.Fatalf("expected correlation tag tag42, got %q", start.Tag)
	}
	if start.JSON == "" {
		t.Fatalf("expected raw json to be retained")
	}

	msg, err = FromFrame(&wire.Frame{Path: "turn.end", ContentType: wire.ContentTypeJSON, StreamID: -1})
	if err != nil {
		t.Fatalf("expected turn.end to decode, got %v", err)
	}
	if _, ok := msg.(TurnEnd); !ok {
		t.Fatalf("expected TurnEnd, got %T", msg)
	}
}

func TestFromFrameSpeechEvents(t *testing.T) {
	msg, err := FromFrame(jsonFrame("speech.startDetected", `{"Offset":1250000}`))
	if err != nil {
		t.Fatalf("expected speech.startDetected to decode, got %v", err)
	}
	if detected, ok := msg.(SpeechStartDetected); !ok || detected.Offset != 1250000 {
		t.Fatalf("expected start offset 1250000, got %#v", msg)
	}

	msg, err = FromFrame(jsonFrame("speech.hypothesis", `{"Text":"hel","Offset":10,"Duration":20}`))
	if err != nil {
		t.Fatalf("expected speech.hypothesis to decode, got %v", err)
	}
	hyp, ok := msg.(SpeechHypothesis)
	if !ok {
		t.Fatalf("expected SpeechHypothesis, got %T", msg)
	}
	if hyp.Text != "hel" || hyp.Offset != 10 || hyp.Duration != 20 {
		t.Fatalf("unexpected hypothesis fields: %#v", hyp)
	}

	msg, err = FromFrame(jsonFrame("speech.fragment", `{"Text":"lo","Offset":30,"Duration":5}`))
	if err != nil {
		t.Fatalf("expected speech.fragment to decode, got %v", err)
	}
	if _, ok := msg.(SpeechFragment); !ok {
		t.Fatalf("expected SpeechFragment, got %T", msg)
	}
}

func TestFromFrameSpeechPhrase(t *testing.T) {
	// Empty recognition with Success status is valid.
	msg, err := FromFrame(jsonFrame("speech.phrase", `{"RecognitionStatus":"Success","DisplayText":"","Offset":1,"Duration":2}`))
	if err != nil {
		t.Fatalf("expected empty success phrase to decode, got %v", err)
	}
	phrase, ok := msg.(SpeechPhrase)
	if !ok {
		t.Fatalf("expected SpeechPhrase, got %T", msg)
	}
	if phrase.Status != RecognitionSuccess || phrase.DisplayText != "" {
		t.Fatalf("unexpected phrase fields: %#v", phrase)
	}

	_, err = FromFrame(jsonFrame("speech.phrase", `{"RecognitionStatus":"NotARealStatus"}`))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestFromFrameTranslationPhraseDefaultsToError(t *testing.T) {
	msg, err := FromFrame(jsonFrame("translation.phrase", `{"Text":"ab","Offset":1,"Duration":2,"Translation":{"FailureReason":"no model"}}`))
	if err != nil {
		t.Fatalf("expected translation.phrase to decode, got %v", err)
	}
	phrase, ok := msg.(TranslationPhrase)
	if !ok {
		t.Fatalf("expected TranslationPhrase, got %T", msg)
	}
	if phrase.Status != RecognitionError {
		t.Fatalf("expected absent recognition status to default to Error, got %q", phrase.Status)
	}
	if phrase.Translation.Status != TranslationError {
		t.Fatalf("expected absent translation status to default to Error, got %q", phrase.Translation.Status)
	}
	if len(phrase.Translation.Translations) != 0 {
		t.Fatalf("expected no translations on an error result, got %v", phrase.Translation.Translations)
	}
}

func TestFromFrameTranslationInvariant(t *testing.T) {
	// A non-success result carrying translations violates the data
	// invariant and must be rejected at construction.
	_, err := FromFrame(jsonFrame("translation.phrase",
		`{"Text":"ab","Translation":{"TranslationStatus":"Error","Translations":[{"Language":"de","Text":"ab"}]}}`))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFromFrameTranslationHypothesis(t *testing.T) {
	msg, err := FromFrame(jsonFrame("translation.hypothesis",
		`{"Text":"hello","Offset":5,"Duration":7,"Translation":{"Translations":[{"Language":"de","Text":"hallo"},{"Language":"fr","Text":"bonjour"}]}}`))
	if err != nil {
		t.Fatalf("expected translation.hypothesis to decode, got %v", err)
	}
	hyp, ok := msg.(TranslationHypothesis)
	if !ok {
		t.Fatalf("expected TranslationHypothesis, got %T", msg)
	}
	if hyp.Translation.Status != TranslationSuccess {
		t.Fatalf("expected interim translation to default to Success, got %q", hyp.Translation.Status)
	}
	if hyp.Translation.Translations["de"] != "hallo" || hyp.Translation.Translations["fr"] != "bonjour" {
		t.Fatalf("unexpected translations: %v", hyp.Translation.Translations)
	}
}

func TestFromFrameAudioOutputChunk(t *testing.T) {
	msg, err := FromFrame(&wire.Frame{
		Path:        "translation.synthesis",
		ContentType: wire.ContentTypeAudio,
		StreamID:    3,
		Body:        []byte{0xAA, 0xBB},
	})
	if err != nil {
		t.Fatalf("expected synthesis chunk to decode, got %v", err)
	}
	chunk, ok := msg.(AudioOutputChunk)
	if !ok {
		t.Fatalf("expected AudioOutputChunk, got %T", msg)
	}
	if chunk.StreamID != 3 || len(chunk.Data) != 2 {
		t.Fatalf("unexpected chunk fields: %#v", chunk)
	}

	_, err = FromFrame(&wire.Frame{Path: "translation.synthesis", StreamID: -1})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for missing stream id, got %v", err)
	}
}

func TestFromFrameUnknownPathBecomesUserMessage(t *testing.T) {
	msg, err := FromFrame(&wire.Frame{
		Path:        "custom.extension",
		ContentType: "application/octet-stream",
		StreamID:    -1,
		Body:        []byte("opaque"),
	})
	if err != nil {
		t.Fatalf("expected unknown path to decode, got %v", err)
	}
	user, ok := msg.(UserMessage)
	if !ok {
		t.Fatalf("expected UserMessage, got %T", msg)
	}
	if user.Path != "custom.extension" || string(user.Body) != "opaque" {
		t.Fatalf("unexpected user message: %#v", user)
	}
}

func TestFromFrameServiceError(t *testing.T) {
	frame := jsonFrame("error", `{"code":"TooManyRequests","message":"slow down"}`)
	frame.RetryAfter = 2 * time.Second
	msg, err := FromFrame(frame)
	if err != nil {
		t.Fatalf("expected error frame to decode, got %v", err)
	}
	svcErr, ok := msg.(ServiceError)
	if !ok {
		t.Fatalf("expected ServiceError, got %T", msg)
	}
	if svcErr.Code != ErrorTooManyRequests || svcErr.RetryAfter != 2*time.Second {
		t.Fatalf("unexpected service error: %#v", svcErr)
	}

	_, err = FromFrame(jsonFrame("error", `{"code":"NotACode"}`))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for unknown code, got %v", err)
	}
}

func TestFromFrameUndecodableBody(t *testing.T) {
	_, err := FromFrame(jsonFrame("speech.hypothesis", `{not json`))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for bad json, got %v", err)
	}
}
