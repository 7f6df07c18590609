// Package wire implements the framing layer of the speech service
// protocol: every unit crossing the connection is a frame made of a
// CRLF-separated header block and a body whose length is declared up
// front. Text frames carry JSON, binary frames carry raw audio.
package wire

import (
	"fmt"
	"time"
)

const (
	HeaderPath          = "Path"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderRequestID     = "X-RequestId"
	HeaderTimestamp     = "X-Timestamp"
	HeaderStreamID      = "X-StreamId"
	HeaderRetryAfter    = "Retry-After"
)

const (
	ContentTypeJSON  = "application/json; charset=utf-8"
	ContentTypeAudio = "audio/x-wav"
)

// AudioPath is the upstream path audio chunks are sent on. A chunk with
// an empty body marks the end of the audio stream.
const AudioPath = "audio"

const (
	// maxHeaderBytes bounds the header block; anything larger means the
	// stream is desynchronized.
	maxHeaderBytes = 4096
	// maxBodyBytes bounds a single frame body.
	maxBodyBytes = 1 << 22

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Frame is one wire-level unit. StreamID is -1 when the frame carries no
// X-StreamId header.
type Frame struct {
	Path        string
	ContentType string
	RequestID   string
	Timestamp   string
	StreamID    int
	RetryAfter  time.Duration
	Body        []byte
}

// ParseError reports a malformed header block. The connection it came
// from is desynchronized and must be torn down.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed frame: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed frame: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}
