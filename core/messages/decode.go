package messages

import (
	"encoding/json"
	"fmt"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/wire"
)

// ValidationError reports a frame whose body violates a message
// invariant. The frame itself was well formed, so the connection stays
// usable; the turn it belongs to does not.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s message: %s", e.Path, e.Reason)
}

// FromFrame decodes a wire frame into its typed message. Unknown paths
// decode into UserMessage rather than failing, so new service message
// types pass through to the caller.
func FromFrame(f *wire.Frame) (Message, error) {
	switch Kind(f.Path) {
	case KindTurnStart:
		return decodeTurnStart(f)
	case KindTurnEnd:
		return TurnEnd{}, nil
	case KindSpeechStartDetected:
		offset, err := decodeOffset(f)
		if err != nil {
			return nil, err
		}
		return SpeechStartDetected{JSON: string(f.Body), Offset: offset}, nil
	case KindSpeechEndDetected:
		offset, err := decodeOffset(f)
		if err != nil {
			return nil, err
		}
		return SpeechEndDetected{JSON: string(f.Body), Offset: offset}, nil
	case KindSpeechHypothesis, KindSpeechFragment:
		return decodeSpeechInterim(f)
	case KindSpeechPhrase:
		return decodeSpeechPhrase(f)
	case KindTranslationHypothesis:
		return decodeTranslationHypothesis(f)
	case KindTranslationPhrase:
		return decodeTranslationPhrase(f)
	case KindAudioOutputChunk:
		if f.StreamID < 0 {
			return nil, &ValidationError{Path: f.Path, Reason: "missing stream id"}
		}
		return AudioOutputChunk{StreamID: f.StreamID, Data: f.Body}, nil
	case KindServiceError:
		return decodeServiceError(f)
	default:
		return UserMessage{Path: f.Path, ContentType: f.ContentType, Body: f.Body}, nil
	}
}

func decodeTurnStart(f *wire.Frame) (Message, error) {
	var body struct {
		Context struct {
			ServiceTag string `json:"serviceTag"`
		} `json:"context"`
	}
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}
	return TurnStart{JSON: string(f.Body), Tag: body.Context.ServiceTag}, nil
}

func decodeOffset(f *wire.Frame) (Offset, error) {
	var body struct {
		Offset uint64 `json:"Offset"`
	}
	if err := unmarshal(f, &body); err != nil {
		return 0, err
	}
	return Offset(body.Offset), nil
}

type speechBody struct {
	Text     string `json:"Text"`
	Offset   uint64 `json:"Offset"`
	Duration uint64 `json:"Duration"`
}

func decodeSpeechInterim(f *wire.Frame) (Message, error) {
	var body speechBody
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}
	if Kind(f.Path) == KindSpeechFragment {
		return SpeechFragment{
			JSON:     string(f.Body),
			Offset:   Offset(body.Offset),
			Duration: Duration(body.Duration),
			Text:     body.Text,
		}, nil
	}
	return SpeechHypothesis{
		JSON:     string(f.Body),
		Offset:   Offset(body.Offset),
		Duration: Duration(body.Duration),
		Text:     body.Text,
	}, nil
}

func decodeSpeechPhrase(f *wire.Frame) (Message, error) {
	var body struct {
		RecognitionStatus RecognitionStatus `json:"RecognitionStatus"`
		DisplayText       string            `json:"DisplayText"`
		Offset            uint64            `json:"Offset"`
		Duration          uint64            `json:"Duration"`
	}
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}
	if !body.RecognitionStatus.valid() {
		return nil, &ValidationError{Path: f.Path, Reason: fmt.Sprintf("unknown recognition status %q", body.RecognitionStatus)}
	}
	return SpeechPhrase{
		JSON:        string(f.Body),
		Offset:      Offset(body.Offset),
		Duration:    Duration(body.Duration),
		Status:      body.RecognitionStatus,
		DisplayText: body.DisplayText,
	}, nil
}

type translationBody struct {
	speechBody
	Translation struct {
		TranslationStatus TranslationStatus `json:"TranslationStatus"`
		FailureReason     string            `json:"FailureReason"`
		Translations      []struct {
			Language string `json:"Language"`
			Text     string `json:"Text"`
		} `json:"Translations"`
	} `json:"Translation"`
}

// newTranslationResult validates the data invariant shared by both
// translation variants: a non-Success result never carries translations.
func (b *translationBody) newTranslationResult(path string, defaultStatus TranslationStatus) (TranslationResult, error) {
	status := b.Translation.TranslationStatus
	if status == "" {
		status = defaultStatus
	}
	if !status.valid() {
		return TranslationResult{}, &ValidationError{Path: path, Reason: fmt.Sprintf("unknown translation status %q", status)}
	}
	if status != TranslationSuccess && len(b.Translation.Translations) > 0 {
		return TranslationResult{}, &ValidationError{Path: path, Reason: "translations present on a non-success result"}
	}

	result := TranslationResult{Status: status, FailureReason: b.Translation.FailureReason}
	if len(b.Translation.Translations) > 0 {
		result.Translations = make(map[string]string, len(b.Translation.Translations))
		for _, t := range b.Translation.Translations {
			result.Translations[t.Language] = t.Text
		}
	}
	return result, nil
}

func decodeTranslationHypothesis(f *wire.Frame) (Message, error) {
	var body translationBody
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}
	translation, err := body.newTranslationResult(f.Path, TranslationSuccess)
	if err != nil {
		return nil, err
	}
	return TranslationHypothesis{
		JSON:        string(f.Body),
		Offset:      Offset(body.Offset),
		Duration:    Duration(body.Duration),
		Text:        body.Text,
		Translation: translation,
	}, nil
}

func decodeTranslationPhrase(f *wire.Frame) (Message, error) {
	var body struct {
		translationBody
		RecognitionStatus RecognitionStatus `json:"RecognitionStatus"`
	}
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}

	status := body.RecognitionStatus
	if status == "" {
		// An absent terminal status is never upgraded to Success.
		status = RecognitionError
	}
	if !status.valid() {
		return nil, &ValidationError{Path: f.Path, Reason: fmt.Sprintf("unknown recognition status %q", status)}
	}

	translation, err := body.newTranslationResult(f.Path, TranslationError)
	if err != nil {
		return nil, err
	}
	return TranslationPhrase{
		JSON:        string(f.Body),
		Offset:      Offset(body.Offset),
		Duration:    Duration(body.Duration),
		Text:        body.Text,
		Translation: translation,
		Status:      status,
	}, nil
}

func decodeServiceError(f *wire.Frame) (Message, error) {
	var body struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}
	if err := unmarshal(f, &body); err != nil {
		return nil, err
	}
	if !body.Code.valid() {
		return nil, &ValidationError{Path: f.Path, Reason: fmt.Sprintf("unknown error code %q", body.Code)}
	}
	return ServiceError{
		JSON:       string(f.Body),
		Code:       body.Code,
		Message:    body.Message,
		RetryAfter: f.RetryAfter,
	}, nil
}

func unmarshal(f *wire.Frame, v any) error {
	if err := json.Unmarshal(f.Body, v); err != nil {
		return &ValidationError{Path: f.Path, Reason: fmt.Sprintf("undecodable body: %v", err)}
	}
	return nil
}
