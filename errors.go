package cookieless

import (
	"errors"

	"github.com/MrEthical07/cookieless/session"
)

var (
	// ErrBackendUnavailable matches any failure reported by the key-value backend.
	ErrBackendUnavailable = session.ErrRedisUnavailable
	// ErrRecordCorrupt matches a stored value that is not a JSON object.
	ErrRecordCorrupt = session.ErrRecordCorrupt
	// ErrInvalidUTF8 matches a record rejected on write because a string in it
	// is not valid UTF-8.
	ErrInvalidUTF8 = session.ErrInvalidUTF8
	// ErrNotFound matches a missing backend entry. It is never passed to an
	// ErrorResolver: a miss is a new-session trigger, not a failure.
	ErrNotFound = session.ErrNotFound

	// ErrNilExtractor is returned by Build when a nil extractor was supplied.
	ErrNilExtractor = errors.New("extractor is not callable")
	// ErrNilErrorResolver is returned by Build when a nil error resolver was supplied.
	ErrNilErrorResolver = errors.New("error resolver is not callable")
	// ErrNilBackend is returned by Build when a nil backend or redis client was supplied.
	ErrNilBackend = errors.New("backend is nil")
	// ErrBuilderUsed is returned when Build is called twice on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
)

// FailureKind classifies a [BackendFailure].
type FailureKind uint8

const (
	// FailureBackend is a connection, timeout, or protocol failure of the backend.
	FailureBackend FailureKind = iota + 1
	// FailureFormat is a stored or outgoing payload that could not be (de)serialized.
	FailureFormat
)

func (k FailureKind) String() string {
	switch k {
	case FailureBackend:
		return "backend"
	case FailureFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Op names the store operation during which a failure happened.
type Op string

const (
	OpFind   Op = "find"
	OpWrite  Op = "write"
	OpDelete Op = "delete"
)

// BackendFailure is the single error type handed to an [ErrorResolver]. It
// carries the original cause, so errors.Is(err, ErrBackendUnavailable) and
// errors.Is(err, ErrRecordCorrupt) keep working.
type BackendFailure struct {
	Op    Op
	Kind  FailureKind
	Cause error
}

func (f *BackendFailure) Error() string {
	msg := "cookieless: " + string(f.Op) + " failed (" + f.Kind.String() + ")"
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *BackendFailure) Unwrap() error {
	return f.Cause
}

// classify wraps a backend or decode error, picking the kind from the sentinel
// it wraps.
func classify(op Op, cause error) *BackendFailure {
	kind := FailureBackend
	if errors.Is(cause, ErrRecordCorrupt) {
		kind = FailureFormat
	}
	return &BackendFailure{Op: op, Kind: kind, Cause: cause}
}
