package engine

import "github.com/bidisha-c/cognitive-services-speech-sdk/core/transport"

type Option func(*Engine)

// WithDialer sets how the engine obtains its transport, both on Open
// and on every reconnect.
func WithDialer(d transport.Dialer) Option {
	return func(e *Engine) { e.dial = d }
}

// WithRetryPolicy replaces the default reconnect policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(e *Engine) { e.retry = p }
}

// WithMaxAudioFrameSize caps the body size of upstream audio frames.
func WithMaxAudioFrameSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAudioFrame = n
		}
	}
}

// WithEventBuffer sets the capacity of the ordered event queue between
// the reader and the caller. A full queue blocks the reader.
func WithEventBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.eventBuffer = n
		}
	}
}
