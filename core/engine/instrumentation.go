package engine

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/bidisha-c/cognitive-services-speech-sdk/core/engine"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)
)

var turnCounter, _ = meter.Int64Counter("speech.turns.started")

var reconnectCounter, _ = meter.Int64Counter("speech.transport.reconnects")
