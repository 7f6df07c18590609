package wire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Decoder reads frames off a byte stream. It is a streaming parser:
// a short read leaves already-consumed bytes buffered and the next call
// resumes where the previous one stopped.
type Decoder struct {
	r *bufio.Reader

	// partial frame state, carried across calls when the underlying
	// reader returns before a full frame is available
	headers   map[string]string
	headerLen int
	body      []byte
	bodyRead  int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next complete frame. It blocks until the declared
// body length is fully buffered, the stream ends, or the header block
// turns out to be malformed (in which case the returned error is a
// *ParseError and the connection must be discarded).
func (d *Decoder) Next() (*Frame, error) {
	if d.body == nil {
		if err := d.readHeaders(); err != nil {
			return nil, err
		}
	}
	if err := d.readBody(); err != nil {
		return nil, err
	}

	frame, err := d.assemble()
	d.headers = nil
	d.headerLen = 0
	d.body = nil
	d.bodyRead = 0
	return frame, err
}

func (d *Decoder) readHeaders() error {
	if d.headers == nil {
		d.headers = make(map[string]string)
	}
	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			d.headerLen += len(line)
			if err == io.EOF && (line != "" || len(d.headers) > 0) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		d.headerLen += len(line)
		if d.headerLen > maxHeaderBytes {
			return &ParseError{Reason: "header block exceeds size limit"}
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if len(d.headers) == 0 {
				return &ParseError{Reason: "empty header block"}
			}
			length, err := d.declaredLength()
			if err != nil {
				return err
			}
			d.body = make([]byte, length)
			return nil
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return &ParseError{Reason: fmt.Sprintf("header line %q has no separator", line)}
		}
		d.headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
}

func (d *Decoder) declaredLength() (int, error) {
	raw, ok := d.headers[HeaderContentLength]
	if !ok {
		return 0, &ParseError{Reason: "missing " + HeaderContentLength + " header"}
	}
	length, err := strconv.Atoi(raw)
	if err != nil || length < 0 {
		return 0, &ParseError{Reason: fmt.Sprintf("invalid %s %q", HeaderContentLength, raw)}
	}
	if length > maxBodyBytes {
		return 0, &ParseError{Reason: fmt.Sprintf("declared body length %d exceeds limit", length)}
	}
	return length, nil
}

func (d *Decoder) readBody() error {
	for d.bodyRead < len(d.body) {
		n, err := d.r.Read(d.body[d.bodyRead:])
		d.bodyRead += n
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

func (d *Decoder) assemble() (*Frame, error) {
	path, ok := d.headers[HeaderPath]
	if !ok || path == "" {
		return nil, &ParseError{Reason: "missing " + HeaderPath + " header"}
	}

	frame := &Frame{
		Path:        path,
		ContentType: d.headers[HeaderContentType],
		RequestID:   d.headers[HeaderRequestID],
		Timestamp:   d.headers[HeaderTimestamp],
		StreamID:    -1,
		Body:        d.body,
	}
	if raw, ok := d.headers[HeaderStreamID]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("invalid %s %q", HeaderStreamID, raw)}
		}
		frame.StreamID = id
	}
	if raw, ok := d.headers[HeaderRetryAfter]; ok {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, &ParseError{Reason: fmt.Sprintf("invalid %s %q", HeaderRetryAfter, raw)}
		}
		frame.RetryAfter = time.Duration(ms) * time.Millisecond
	}
	return frame, nil
}
