package messages

// RecognitionStatus reports the outcome of a recognition segment. The
// set is closed; an unknown value on the wire is a protocol violation,
// not a new status.
type RecognitionStatus string

const (
	RecognitionSuccess               RecognitionStatus = "Success"
	RecognitionNoMatch               RecognitionStatus = "NoMatch"
	RecognitionInitialSilenceTimeout RecognitionStatus = "InitialSilenceTimeout"
	RecognitionInitialBabbleTimeout  RecognitionStatus = "InitialBabbleTimeout"
	RecognitionError                 RecognitionStatus = "Error"
	RecognitionEndOfDictation        RecognitionStatus = "EndOfDictation"
	RecognitionTooManyRequests       RecognitionStatus = "TooManyRequests"
	RecognitionBadRequest            RecognitionStatus = "BadRequest"
	RecognitionForbidden             RecognitionStatus = "Forbidden"
	RecognitionServiceUnavailable    RecognitionStatus = "ServiceUnavailable"
	RecognitionInvalidMessage        RecognitionStatus = "InvalidMessage"
)

func (s RecognitionStatus) valid() bool {
	switch s {
	case RecognitionSuccess, RecognitionNoMatch, RecognitionInitialSilenceTimeout,
		RecognitionInitialBabbleTimeout, RecognitionError, RecognitionEndOfDictation,
		RecognitionTooManyRequests, RecognitionBadRequest, RecognitionForbidden,
		RecognitionServiceUnavailable, RecognitionInvalidMessage:
		return true
	}
	return false
}

// TranslationStatus reports the outcome of a translation segment.
type TranslationStatus string

const (
	TranslationSuccess        TranslationStatus = "Success"
	TranslationError          TranslationStatus = "Error"
	TranslationInvalidMessage TranslationStatus = "InvalidMessage"
)

func (s TranslationStatus) valid() bool {
	switch s {
	case TranslationSuccess, TranslationError, TranslationInvalidMessage:
		return true
	}
	return false
}

// ErrorCode is the service-side failure taxonomy carried on error
// frames and used by the retry policy to tell transient failures from
// permanent ones.
type ErrorCode string

const (
	ErrorAuthentication     ErrorCode = "AuthenticationError"
	ErrorBadRequest         ErrorCode = "BadRequest"
	ErrorTooManyRequests    ErrorCode = "TooManyRequests"
	ErrorForbidden          ErrorCode = "Forbidden"
	ErrorConnection         ErrorCode = "ConnectionError"
	ErrorServiceUnavailable ErrorCode = "ServiceUnavailable"
	ErrorService            ErrorCode = "ServiceError"
	ErrorRuntime            ErrorCode = "RuntimeError"
)

func (c ErrorCode) valid() bool {
	switch c {
	case ErrorAuthentication, ErrorBadRequest, ErrorTooManyRequests,
		ErrorForbidden, ErrorConnection, ErrorServiceUnavailable,
		ErrorService, ErrorRuntime:
		return true
	}
	return false
}
