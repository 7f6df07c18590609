package engine

import (
	"time"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
)

// FailureClass splits the service error taxonomy into failures worth a
// reconnect and failures that must surface immediately.
type FailureClass int

const (
	Transient FailureClass = iota
	Permanent
)

// Classify maps a service error code onto its failure class.
func Classify(code messages.ErrorCode) FailureClass {
	switch code {
	case messages.ErrorConnection, messages.ErrorServiceUnavailable, messages.ErrorTooManyRequests:
		return Transient
	}
	return Permanent
}

// RetryPolicy bounds reconnection after transient failures. Exact
// timing is policy, not protocol: tune it per deployment.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     4,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     8 * time.Second,
		Multiplier:     2,
	}
}

// Backoff returns the delay before reconnect attempt number attempt
// (zero-based). A server-suggested minimum, when present, wins over the
// computed delay.
func (p RetryPolicy) Backoff(attempt int, minimum time.Duration) time.Duration {
	d := p.InitialBackoff
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
		if d >= p.MaxBackoff {
			d = p.MaxBackoff
			break
		}
	}
	if d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	if minimum > d {
		return minimum
	}
	return d
}
