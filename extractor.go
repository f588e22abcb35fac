package cookieless

import (
	"net/http"
	"reflect"
	"regexp"
)

// Extractor locates the session identifier of a request. It reports false
// when the request carries no identifier.
type Extractor interface {
	Extract(r *http.Request) (string, bool)
}

// ExtractorFunc adapts a function to [Extractor].
type ExtractorFunc func(r *http.Request) (string, bool)

func (f ExtractorFunc) Extract(r *http.Request) (string, bool) {
	return f(r)
}

// HeaderTokenExtractor reads the identifier from a "<Scheme> <id>" token in a
// request header. The match is unanchored, so the token may appear anywhere in
// the header value.
type HeaderTokenExtractor struct {
	Header string
	Scheme string

	pattern *regexp.Regexp
}

// DefaultExtractor reads "Authorization: Token <id>".
var DefaultExtractor Extractor = NewHeaderTokenExtractor("Authorization", "Token")

// NewHeaderTokenExtractor builds an extractor for the given header and scheme.
func NewHeaderTokenExtractor(header, scheme string) *HeaderTokenExtractor {
	return &HeaderTokenExtractor{
		Header:  header,
		Scheme:  scheme,
		pattern: regexp.MustCompile(regexp.QuoteMeta(scheme) + `\s+(\S+)`),
	}
}

func (e *HeaderTokenExtractor) Extract(r *http.Request) (string, bool) {
	if e == nil || r == nil {
		return "", false
	}
	value := r.Header.Get(e.Header)
	if value == "" {
		return "", false
	}

	pattern := e.pattern
	if pattern == nil {
		pattern = regexp.MustCompile(regexp.QuoteMeta(e.Scheme) + `\s+(\S+)`)
	}
	m := pattern.FindStringSubmatch(value)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// isNilStrategy reports whether v is nil or a typed nil (a nil func, pointer,
// map, chan, or interface stored in a non-nil interface).
func isNilStrategy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
