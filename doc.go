// Package cookieless provides a server-side session store that never uses
// cookies. The session identifier of a request is located by an [Extractor]
// (by default the "Authorization: Token <id>" header), and the session record
// lives in Redis as a JSON object under that identifier.
//
// A [Store] is built once through [Builder.Build] and shared by every request.
// Host pipelines drive it through three calls: [Store.FindSession] at first
// access, then [Store.WriteSession] or [Store.DeleteSession] when the request
// is done. The middleware package wires these into net/http.
//
// # Failure policy
//
// Backend outages and corrupt payloads never fail a request during find or
// delete. The configured [ErrorResolver] observes a [*BackendFailure] and the
// request continues with a fresh, empty session. Writes report failure to the
// caller through a ("", false) result after the resolver ran.
//
// # Fixed behavior
//
// The session policy is not configurable: persistence is deferred to the end
// of the request, loaded sessions are always written back, identifiers are
// never renewed per request, and no cookie is ever read or written. See
// [Store.Policy].
//
// # What this package must NOT do
//
//   - Set or read a session cookie.
//   - Cache records between calls.
//   - Retry backend operations.
//   - Log raw session identifiers; logs and audit events carry fingerprints.
package cookieless
