package engine

import (
	"testing"
	"time"

	"github.com/bidisha-c/cognitive-services-speech-sdk/core/messages"
)

func TestClassifySplitsTheTaxonomy(t *testing.T) {
	transient := []messages.ErrorCode{
		messages.ErrorConnection,
		messages.ErrorServiceUnavailable,
		messages.ErrorTooManyRequests,
	}
	for _, code := range transient {
		if Classify(code) != Transient {
			t.Fatalf("expected %s to classify as transient", code)
		}
	}

	permanent := []messages.ErrorCode{
		messages.ErrorAuthentication,
		messages.ErrorBadRequest,
		messages.ErrorForbidden,
		messages.ErrorRuntime,
		messages.ErrorService,
	}
	for _, code := range permanent {
		if Classify(code) != Permanent {
			t.Fatalf("expected %s to classify as permanent", code)
		}
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:     5,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     2,
	}

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for attempt, expected := range want {
		if got := policy.Backoff(attempt, 0); got != expected {
			t.Fatalf("expected attempt %d backoff %v, got %v", attempt, expected, got)
		}
	}
}

func TestBackoffHonorsServerSuggestedMinimum(t *testing.T) {
	policy := DefaultRetryPolicy()

	if got := policy.Backoff(0, 3*time.Second); got != 3*time.Second {
		t.Fatalf("expected server-suggested minimum to win, got %v", got)
	}
	// A minimum below the computed delay changes nothing.
	if got := policy.Backoff(0, time.Millisecond); got != policy.InitialBackoff {
		t.Fatalf("expected the policy delay, got %v", got)
	}
}
