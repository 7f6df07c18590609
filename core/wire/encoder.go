package wire

import (
	"fmt"
	"io"
	"strconv"
)

// DefaultMaxAudioFrameSize caps the body of a single upstream audio
// frame. Callers pushing larger buffers get them split transparently.
const DefaultMaxAudioFrameSize = 4096

// Encoder writes frames to a byte stream. Writes go straight to the
// underlying writer, so a slow sink blocks the caller; the encoder
// itself buffers nothing.
type Encoder struct {
	w io.Writer

	maxAudioFrame int
}

func NewEncoder(w io.Writer, maxAudioFrame int) *Encoder {
	if maxAudioFrame <= 0 {
		maxAudioFrame = DefaultMaxAudioFrameSize
	}
	return &Encoder{w: w, maxAudioFrame: maxAudioFrame}
}

// WriteFrame encodes a single frame. The Content-Length and X-Timestamp
// headers are filled in by the encoder; a missing timestamp gets the
// current time.
func (e *Encoder) WriteFrame(f *Frame) error {
	ts := f.Timestamp
	if ts == "" {
		ts = timestamp()
	}

	var header []byte
	header = appendHeader(header, HeaderPath, f.Path)
	if f.ContentType != "" {
		header = appendHeader(header, HeaderContentType, f.ContentType)
	}
	if f.RequestID != "" {
		header = appendHeader(header, HeaderRequestID, f.RequestID)
	}
	header = appendHeader(header, HeaderTimestamp, ts)
	if f.StreamID >= 0 {
		header = appendHeader(header, HeaderStreamID, strconv.Itoa(f.StreamID))
	}
	if f.RetryAfter > 0 {
		header = appendHeader(header, HeaderRetryAfter, strconv.FormatInt(f.RetryAfter.Milliseconds(), 10))
	}
	header = appendHeader(header, HeaderContentLength, strconv.Itoa(len(f.Body)))
	header = append(header, '\r', '\n')

	if _, err := e.w.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if len(f.Body) > 0 {
		if _, err := e.w.Write(f.Body); err != nil {
			return fmt.Errorf("failed to write frame body: %w", err)
		}
	}
	return nil
}

// WriteAudio splits p into audio frames no larger than the configured
// maximum and writes them in order. An empty p writes nothing; use
// WriteAudioEnd to terminate the audio stream.
func (e *Encoder) WriteAudio(requestID string, p []byte) error {
	for len(p) > 0 {
		chunk := p
		if len(chunk) > e.maxAudioFrame {
			chunk = chunk[:e.maxAudioFrame]
		}
		err := e.WriteFrame(&Frame{
			Path:        AudioPath,
			ContentType: ContentTypeAudio,
			RequestID:   requestID,
			StreamID:    -1,
			Body:        chunk,
		})
		if err != nil {
			return err
		}
		p = p[len(chunk):]
	}
	return nil
}

// WriteAudioEnd writes the zero-length audio frame that marks the end of
// the upstream audio for requestID. It is distinguishable on the wire
// from a regular chunk by its zero Content-Length.
func (e *Encoder) WriteAudioEnd(requestID string) error {
	return e.WriteFrame(&Frame{
		Path:        AudioPath,
		ContentType: ContentTypeAudio,
		RequestID:   requestID,
		StreamID:    -1,
	})
}

func appendHeader(b []byte, name, value string) []byte {
	b = append(b, name...)
	b = append(b, ':', ' ')
	b = append(b, value...)
	return append(b, '\r', '\n')
}
