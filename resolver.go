package cookieless

import (
	"errors"
	"net/http"

	"github.com/MrEthical07/cookieless/internal"
	"github.com/rs/zerolog"
)

// ErrorResolver is notified of every backend or payload failure before the
// store applies its fallback. rec is nil for failures during find and delete.
// It runs synchronously on the request goroutine; a panic is not recovered.
type ErrorResolver interface {
	ResolveError(err error, r *http.Request, sessionID string, rec Record)
}

// ErrorResolverFunc adapts a function to [ErrorResolver].
type ErrorResolverFunc func(err error, r *http.Request, sessionID string, rec Record)

func (f ErrorResolverFunc) ResolveError(err error, r *http.Request, sessionID string, rec Record) {
	f(err, r, sessionID, rec)
}

// NoOpResolver ignores every failure. It is the default resolver.
type NoOpResolver struct{}

func (NoOpResolver) ResolveError(error, *http.Request, string, Record) {}

// LogResolver reports failures as zerolog warnings. Identifiers are logged as
// fingerprints.
type LogResolver struct {
	logger zerolog.Logger
}

// NewLogResolver returns a resolver that writes to logger.
func NewLogResolver(logger zerolog.Logger) *LogResolver {
	return &LogResolver{logger: logger}
}

func (l *LogResolver) ResolveError(err error, r *http.Request, sessionID string, rec Record) {
	ev := l.logger.Warn().Err(err)

	var failure *BackendFailure
	if errors.As(err, &failure) {
		ev = ev.Str("op", string(failure.Op)).Str("kind", failure.Kind.String())
	}
	if sessionID != "" {
		ev = ev.Str("session", internal.Fingerprint(sessionID))
	}
	if r != nil {
		ev = ev.Str("method", r.Method)
		if r.URL != nil {
			ev = ev.Str("path", r.URL.Path)
		}
	}
	if rec != nil {
		ev = ev.Int("record_keys", len(rec))
	}

	ev.Msg("session store failure")
}

type chainResolver []ErrorResolver

func (c chainResolver) ResolveError(err error, r *http.Request, sessionID string, rec Record) {
	for _, res := range c {
		res.ResolveError(err, r, sessionID, rec)
	}
}

// ChainResolvers returns a resolver that calls each non-nil resolver in order.
func ChainResolvers(resolvers ...ErrorResolver) ErrorResolver {
	chain := make(chainResolver, 0, len(resolvers))
	for _, res := range resolvers {
		if isNilStrategy(res) {
			continue
		}
		chain = append(chain, res)
	}
	return chain
}
